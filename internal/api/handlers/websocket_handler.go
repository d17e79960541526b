package handlers

import (
	"context"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/metrics"
	"github.com/fakenewsdetect/backend/internal/validation"
	"github.com/fakenewsdetect/backend/internal/verdict"
	"github.com/fakenewsdetect/backend/pkg/logger"
)

// Event is one server-to-client WebSocket message.
type Event struct {
	Type      string          `json:"type"`
	Status    string          `json:"status,omitempty"`
	Data      *verdict.Record `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// WebSocketHandler streams analysis progress: a "status" event when work
// starts, then a "result" or "error" event.
type WebSocketHandler struct {
	analyzer analysis.Analyzer
	timeout  time.Duration
}

func NewWebSocketHandler(analyzer analysis.Analyzer, timeout time.Duration) *WebSocketHandler {
	return &WebSocketHandler{
		analyzer: analyzer,
		timeout:  timeout,
	}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	send := func(e Event) error { return c.WriteJSON(e) }

	for {
		var msg map[string]any
		if err := c.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Failed to read WebSocket message", zap.Error(err))
			}
			return
		}

		if err := h.Process(ctx, msg, send); err != nil {
			logger.Warn("Failed to write WebSocket message", zap.Error(err))
			return
		}
	}
}

// Process handles one client message. It only returns write errors; every
// other failure is reported to the client as an "error" event.
func (h *WebSocketHandler) Process(ctx context.Context, msg map[string]any, send func(Event) error) error {
	kind, _ := msg["type"].(string)
	switch kind {
	case "ping":
		return send(Event{Type: "pong", Timestamp: now()})
	case "analyze":
		return h.analyze(ctx, msg, send)
	default:
		return send(Event{Type: "error", Error: "Validation Error", Message: "Unsupported message type"})
	}
}

func (h *WebSocketHandler) analyze(ctx context.Context, msg map[string]any, send func(Event) error) error {
	input, _ := msg["inputType"].(string)
	body := make(map[string]any, len(msg))
	for k, v := range msg {
		if k != "type" && k != "inputType" {
			body[k] = v
		}
	}

	var run func(context.Context) (verdict.Record, error)
	switch analysis.InputType(input) {
	case analysis.InputText:
		in, err := validation.TextInput(body)
		if err != nil {
			return send(Event{Type: "error", Error: "Validation Error", Message: err.Error()})
		}
		run = func(ctx context.Context) (verdict.Record, error) { return h.analyzer.AnalyzeText(ctx, in) }
	case analysis.InputURL:
		in, err := validation.URLInput(body)
		if err != nil {
			return send(Event{Type: "error", Error: "Validation Error", Message: err.Error()})
		}
		run = func(ctx context.Context) (verdict.Record, error) { return h.analyzer.AnalyzeURL(ctx, in) }
	default:
		return send(Event{Type: "error", Error: "Validation Error", Message: `"inputType" must be one of [text, url]`})
	}

	if err := send(Event{Type: "status", Status: "processing", Timestamp: now()}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	rec, err := run(ctx)
	metrics.AnalysisDuration.WithLabelValues(input).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysisErrors.WithLabelValues(input).Inc()
		logger.Error("WebSocket analysis failed", zap.String("input_type", input), zap.Error(err))
		return send(Event{Type: "error", Error: "Analysis Error", Message: analysisFailure(analysis.InputType(input))})
	}
	metrics.AnalysisTotal.WithLabelValues(input, string(rec.Verdict)).Inc()

	return send(Event{Type: "result", Data: &rec, Timestamp: now()})
}
