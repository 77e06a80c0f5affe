package evaluator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.github.com/Wanderer0074348/SheetGrader/src/config"
	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

func TestOpenAIChatRequest_TemperatureReachesTheWire(t *testing.T) {
	e, err := NewOpenAIEvaluator(&config.EvaluatorConfig{
		Provider:  "openai",
		Model:     "gpt-4o",
		APIKey:    "test-key",
		MaxTokens: 512,
	})
	require.NoError(t, err)

	chatReq := e.buildChatRequest(&models.GradingRequest{
		Document: []byte("%PDF-1.4 scanned sheet"),
		Mode:     models.ModeStrict,
	})

	payload, err := json.Marshal(chatReq)
	require.NoError(t, err)

	// A literal 0 would be dropped by the field's omitempty tag and the
	// server would sample at its default temperature instead.
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	temperature, ok := decoded["temperature"].(float64)
	require.True(t, ok, "temperature must be present in the request body")
	assert.Greater(t, temperature, 0.0)
	assert.Less(t, temperature, 1e-6)
}

func TestOpenAIChatRequest_CarriesDocumentAndPrompt(t *testing.T) {
	e, err := NewOpenAIEvaluator(&config.EvaluatorConfig{
		Provider:  "openai",
		Model:     "gpt-4o",
		APIKey:    "test-key",
		MaxTokens: 512,
	})
	require.NoError(t, err)

	chatReq := e.buildChatRequest(&models.GradingRequest{
		Document: []byte("%PDF-1.4 scanned sheet"),
		Mode:     models.ModeStandard,
		Criteria: "Q1: 10 marks",
	})

	require.Len(t, chatReq.Messages, 1)
	parts := chatReq.Messages[0].MultiContent
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].ImageURL.URL, "data:application/pdf;base64,")
	assert.Contains(t, parts[1].Text, "MARKING SCHEME PROVIDED")
}

func TestNewOpenAIEvaluator_RequiresKey(t *testing.T) {
	_, err := NewOpenAIEvaluator(&config.EvaluatorConfig{Provider: "openai", Model: "gpt-4o"})
	assert.Error(t, err)
}
