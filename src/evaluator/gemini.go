package evaluator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"www.github.com/Wanderer0074348/SheetGrader/src/config"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// GeminiEvaluator grades through the Gemini API. A client is created per call
// and closed with it; the evaluation itself dwarfs the connection cost.
type GeminiEvaluator struct {
	config *config.EvaluatorConfig
}

func NewGeminiEvaluator(cfg *config.EvaluatorConfig) (*GeminiEvaluator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is empty")
	}

	return &GeminiEvaluator{config: cfg}, nil
}

func (e *GeminiEvaluator) Name() string  { return "gemini" }
func (e *GeminiEvaluator) Model() string { return e.config.Model }

func (e *GeminiEvaluator) Evaluate(ctx context.Context, req *models.GradingRequest) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(e.config.APIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(e.config.Model)
	temperature := float32(0)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}
	maxTokens := int32(e.config.MaxTokens)
	model.GenerationConfig.MaxOutputTokens = &maxTokens

	prompt := BuildPrompt(req.Mode, req.Criteria)

	resp, err := model.GenerateContent(ctx,
		&genai.Blob{MIMEType: "application/pdf", Data: req.Document},
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("Gemini evaluation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("Gemini reply contained no text parts")
	}

	return b.String(), nil
}
