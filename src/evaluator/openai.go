package evaluator

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/sashabaranov/go-openai"

	"www.github.com/Wanderer0074348/SheetGrader/src/config"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// OpenAIEvaluator grades through an OpenAI-compatible endpoint. The document
// travels as a base64 data URL part of a multi-content user message.
type OpenAIEvaluator struct {
	config *config.EvaluatorConfig
	client *openai.Client
}

func NewOpenAIEvaluator(cfg *config.EvaluatorConfig) (*OpenAIEvaluator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is empty")
	}

	return &OpenAIEvaluator{
		config: cfg,
		client: openai.NewClient(cfg.APIKey),
	}, nil
}

func (e *OpenAIEvaluator) Name() string  { return "openai" }
func (e *OpenAIEvaluator) Model() string { return e.config.Model }

func (e *OpenAIEvaluator) buildChatRequest(req *models.GradingRequest) openai.ChatCompletionRequest {
	prompt := BuildPrompt(req.Mode, req.Criteria)
	docURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(req.Document)

	return openai.ChatCompletionRequest{
		Model:     e.config.Model,
		MaxTokens: e.config.MaxTokens,
		// Identical inputs should yield identical output. Temperature carries
		// an omitempty tag in go-openai, so a literal 0 would vanish from the
		// request and leave the server default (1.0) in effect; the smallest
		// positive float32 survives marshaling and is still effectively zero.
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: docURL},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
				},
			},
		},
	}
}

func (e *OpenAIEvaluator) Evaluate(ctx context.Context, req *models.GradingRequest) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, e.buildChatRequest(req))
	if err != nil {
		return "", fmt.Errorf("OpenAI evaluation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
