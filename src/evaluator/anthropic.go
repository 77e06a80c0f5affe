package evaluator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"www.github.com/Wanderer0074348/SheetGrader/src/config"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"
)

// AnthropicEvaluator calls the Claude Messages API directly. The answer sheet
// travels as a native PDF document block, which keeps the handwriting readable
// to the model without a local rasterization step; the chat-completion SDK
// abstractions have no slot for document blocks, so the request is built on
// the wire format itself.
type AnthropicEvaluator struct {
	config   *config.EvaluatorConfig
	httpc    *http.Client
	endpoint string
}

func NewAnthropicEvaluator(cfg *config.EvaluatorConfig) (*AnthropicEvaluator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is empty")
	}

	return &AnthropicEvaluator{
		config:   cfg,
		httpc:    &http.Client{},
		endpoint: anthropicEndpoint,
	}, nil
}

func (e *AnthropicEvaluator) Name() string  { return "anthropic" }
func (e *AnthropicEvaluator) Model() string { return e.config.Model }

// buildRequestBody assembles the Messages API payload: one user message
// holding the PDF document block followed by the examiner prompt.
func (e *AnthropicEvaluator) buildRequestBody(req *models.GradingRequest) map[string]any {
	prompt := BuildPrompt(req.Mode, req.Criteria)

	return map[string]any{
		"model":       e.config.Model,
		"max_tokens":  e.config.MaxTokens,
		"temperature": 0, // identical inputs should yield identical output
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{
						"type": "document",
						"source": map[string]any{
							"type":       "base64",
							"media_type": "application/pdf",
							"data":       base64.StdEncoding.EncodeToString(req.Document),
						},
					},
					map[string]any{"type": "text", "text": prompt},
				},
			},
		},
	}
}

func (e *AnthropicEvaluator) Evaluate(ctx context.Context, req *models.GradingRequest) (string, error) {
	payload, err := json.Marshal(e.buildRequestBody(req))
	if err != nil {
		return "", fmt.Errorf("failed to encode Anthropic request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", e.config.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := e.httpc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("Anthropic evaluation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Anthropic returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("failed to decode Anthropic response: %w", err)
	}

	var out strings.Builder
	for _, block := range raw.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("Anthropic returned no text content")
	}

	return out.String(), nil
}
