// Package evaluator hosts the remote evaluation engines: one implementation
// of models.SheetEvaluator per provider, a shared examiner prompt builder and
// the JSON-repair reply parser. Every engine requests deterministic output
// (temperature 0); the result cache still guards against residual drift.
package evaluator

import (
	"fmt"

	"www.github.com/Wanderer0074348/SheetGrader/src/config"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// New selects the engine for the configured provider.
func New(cfg *config.EvaluatorConfig) (models.SheetEvaluator, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicEvaluator(cfg)
	case "openai":
		return NewOpenAIEvaluator(cfg)
	case "gemini":
		return NewGeminiEvaluator(cfg)
	default:
		return nil, fmt.Errorf("unknown evaluator provider %q", cfg.Provider)
	}
}
