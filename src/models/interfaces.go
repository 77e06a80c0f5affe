package models

import (
	"context"
)

// SheetEvaluator is the remote evaluation call: it sends the uploaded document
// to a third-party model and returns the raw reply text. Implementations are
// black boxes; the caller must not assume byte-for-byte remote determinism.
type SheetEvaluator interface {
	// Name identifies the provider (anthropic, openai, gemini).
	Name() string
	// Model returns the concrete model identifier used for calls.
	Model() string
	// Evaluate grades the request's document and returns the raw model output.
	Evaluate(ctx context.Context, req *GradingRequest) (string, error)
}

// SessionRecorder tracks session metadata as evaluations happen.
type SessionRecorder interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Touch(ctx context.Context, sessionID string) error
	RecordEvaluation(ctx context.Context, sessionID string) error
}
