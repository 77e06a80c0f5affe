package utils

import (
	"strings"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// Pricing per 1M tokens (as of 2025)
const (
	// Anthropic Claude Sonnet
	ClaudeInputPer1M  = 3.00
	ClaudeOutputPer1M = 15.00

	// OpenAI GPT-4o
	GPT4oInputPer1M  = 2.50
	GPT4oOutputPer1M = 10.00

	// Google Gemini Flash
	GeminiInputPer1M  = 0.30
	GeminiOutputPer1M = 2.50
)

// EstimateTokenCount estimates token count from text (rough approximation,
// ~1 token per 4 characters for English).
func EstimateTokenCount(text string) int {
	text = strings.TrimSpace(text)

	tokenCount := len(text) / 4
	if tokenCount < 10 {
		tokenCount = 10
	}

	return tokenCount
}

// EstimateDocumentTokens estimates how many input tokens a PDF of the given
// size consumes. Scanned pages are billed roughly like images; one byte of
// compressed scan works out to well under a token, so /6 is a coarse ceiling.
func EstimateDocumentTokens(sizeBytes int) int {
	tokens := sizeBytes / 6
	if tokens < 100 {
		tokens = 100
	}
	return tokens
}

// CalculateCost prices an evaluation call for the given model.
func CalculateCost(inputTokens, outputTokens int, model string) float64 {
	var inputCost, outputCost float64

	switch {
	case strings.Contains(strings.ToLower(model), "claude"):
		inputCost = float64(inputTokens) * ClaudeInputPer1M / 1000000
		outputCost = float64(outputTokens) * ClaudeOutputPer1M / 1000000
	case strings.Contains(strings.ToLower(model), "gemini"):
		inputCost = float64(inputTokens) * GeminiInputPer1M / 1000000
		outputCost = float64(outputTokens) * GeminiOutputPer1M / 1000000
	default:
		// GPT-4o pricing for OpenAI and unknown models
		inputCost = float64(inputTokens) * GPT4oInputPer1M / 1000000
		outputCost = float64(outputTokens) * GPT4oOutputPer1M / 1000000
	}

	return inputCost + outputCost
}

// CalculateCostMetrics builds the cost block for an evaluation response. On a
// cache hit the call cost is zero and the avoided remote call shows up as
// SavedByCache.
func CalculateCostMetrics(documentSize int, prompt, response, model string, cacheHit bool) *models.CostMetrics {
	inputTokens := EstimateDocumentTokens(documentSize) + EstimateTokenCount(prompt)
	outputTokens := EstimateTokenCount(response)
	callCost := CalculateCost(inputTokens, outputTokens, model)

	metrics := &models.CostMetrics{
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
		Model:        model,
	}

	if cacheHit {
		metrics.SavedByCache = callCost
	} else {
		metrics.Cost = callCost
	}

	return metrics
}
