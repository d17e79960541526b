package handlers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/api/handlers"
	"github.com/fakenewsdetect/backend/internal/verdict"
)

type failingAnalyzer struct{ analysis.Analyzer }

func (failingAnalyzer) AnalyzeURL(context.Context, analysis.URLInput) (verdict.Record, error) {
	return verdict.Record{}, errors.New("upstream down")
}

func collect(t *testing.T, h *handlers.WebSocketHandler, msg map[string]any) []handlers.Event {
	t.Helper()

	var events []handlers.Event
	err := h.Process(context.Background(), msg, func(e handlers.Event) error {
		events = append(events, e)
		return nil
	})
	require.NoError(t, err)
	return events
}

func TestProcessPing(t *testing.T) {
	h := handlers.NewWebSocketHandler(analysis.NewMockAnalyzer(analysis.Delays{}), time.Second)

	events := collect(t, h, map[string]any{"type": "ping"})
	require.Len(t, events, 1)
	assert.Equal(t, "pong", events[0].Type)
	assert.NotEmpty(t, events[0].Timestamp)
}

func TestProcessAnalyzeText(t *testing.T) {
	h := handlers.NewWebSocketHandler(analysis.NewMockAnalyzer(analysis.Delays{}), time.Second)

	events := collect(t, h, map[string]any{
		"type":      "analyze",
		"inputType": "text",
		"title":     "Official statement",
		"content":   "verified",
	})
	require.Len(t, events, 2)
	assert.Equal(t, "status", events[0].Type)
	assert.Equal(t, "processing", events[0].Status)

	assert.Equal(t, "result", events[1].Type)
	require.NotNil(t, events[1].Data)
	assert.Equal(t, verdict.Real, events[1].Data.Verdict)
	assert.Equal(t, 92, events[1].Data.Confidence)
}

func TestProcessValidation(t *testing.T) {
	h := handlers.NewWebSocketHandler(analysis.NewMockAnalyzer(analysis.Delays{}), time.Second)

	tests := []struct {
		name    string
		msg     map[string]any
		message string
	}{
		{"unknown type", map[string]any{"type": "subscribe"}, "Unsupported message type"},
		{"unknown input type", map[string]any{"type": "analyze", "inputType": "image"}, `"inputType" must be one of [text, url]`},
		{"missing title", map[string]any{"type": "analyze", "inputType": "text", "content": "x"}, `"title" is required`},
		{"bad url", map[string]any{"type": "analyze", "inputType": "url", "url": "nope"}, `"url" must be a valid uri`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := collect(t, h, tt.msg)
			require.Len(t, events, 1)
			assert.Equal(t, "error", events[0].Type)
			assert.Equal(t, "Validation Error", events[0].Error)
			assert.Equal(t, tt.message, events[0].Message)
		})
	}
}

func TestProcessAnalysisFailure(t *testing.T) {
	h := handlers.NewWebSocketHandler(failingAnalyzer{}, time.Second)

	events := collect(t, h, map[string]any{
		"type":      "analyze",
		"inputType": "url",
		"url":       "https://example.com",
	})
	require.Len(t, events, 2)
	assert.Equal(t, "error", events[1].Type)
	assert.Equal(t, "Analysis Error", events[1].Error)
	assert.Equal(t, "Failed to analyze URL content", events[1].Message)
}

func TestProcessReturnsWriteErrors(t *testing.T) {
	h := handlers.NewWebSocketHandler(analysis.NewMockAnalyzer(analysis.Delays{}), time.Second)
	writeErr := errors.New("closed")

	err := h.Process(context.Background(), map[string]any{"type": "ping"}, func(handlers.Event) error {
		return writeErr
	})
	assert.ErrorIs(t, err, writeErr)
}
