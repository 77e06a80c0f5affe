package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

// MockEvaluator implements models.SheetEvaluator
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEvaluator) Model() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockEvaluator) Evaluate(ctx context.Context, req *models.GradingRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockSessionRecorder implements models.SessionRecorder
type MockSessionRecorder struct {
	mock.Mock
}

func (m *MockSessionRecorder) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRecorder) Touch(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionRecorder) RecordEvaluation(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
