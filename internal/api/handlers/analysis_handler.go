package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/metrics"
	"github.com/fakenewsdetect/backend/internal/middleware/payload"
	"github.com/fakenewsdetect/backend/internal/middleware/upload"
	"github.com/fakenewsdetect/backend/internal/verdict"
	"github.com/fakenewsdetect/backend/pkg/logger"
)

type AnalysisHandler struct {
	analyzer analysis.Analyzer
	timeout  time.Duration
}

func NewAnalysisHandler(analyzer analysis.Analyzer, timeout time.Duration) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		timeout:  timeout,
	}
}

// AnalyzeText expects payload.Validate(validation.TextSchema) to run first.
func (h *AnalysisHandler) AnalyzeText(c *fiber.Ctx) error {
	v := payload.Values(c)
	in := analysis.TextInput{Title: v.String("title"), Content: v.String("content")}

	return h.run(c, analysis.InputText, func(ctx context.Context) (verdict.Record, error) {
		return h.analyzer.AnalyzeText(ctx, in)
	})
}

// AnalyzeURL expects payload.Validate(validation.URLSchema) to run first.
func (h *AnalysisHandler) AnalyzeURL(c *fiber.Ctx) error {
	in := analysis.URLInput{URL: payload.Values(c).String("url")}

	return h.run(c, analysis.InputURL, func(ctx context.Context) (verdict.Record, error) {
		return h.analyzer.AnalyzeURL(ctx, in)
	})
}

// AnalyzeImage expects upload.Image to run first.
func (h *AnalysisHandler) AnalyzeImage(c *fiber.Ctx) error {
	file, ok := upload.FromContext(c)
	if !ok {
		metrics.ValidationFailures.WithLabelValues(string(analysis.InputImage)).Inc()
		return fail(c, fiber.StatusBadRequest, "Validation Error", "Image file is required")
	}
	in := analysis.ImageInput{Data: file.Data, MimeType: file.MimeType}

	return h.run(c, analysis.InputImage, func(ctx context.Context) (verdict.Record, error) {
		return h.analyzer.AnalyzeImage(ctx, in)
	})
}

func (h *AnalysisHandler) run(c *fiber.Ctx, input analysis.InputType, analyze func(context.Context) (verdict.Record, error)) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	start := time.Now()
	rec, err := analyze(ctx)
	metrics.AnalysisDuration.WithLabelValues(string(input)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AnalysisErrors.WithLabelValues(string(input)).Inc()
		return internalError(c, err, "Analysis Error", analysisFailure(input))
	}

	metrics.AnalysisTotal.WithLabelValues(string(input), string(rec.Verdict)).Inc()
	logger.Info("Analysis completed",
		zap.String("input_type", string(input)),
		zap.String("verdict", string(rec.Verdict)),
		zap.Int("confidence", rec.Confidence),
		zap.Duration("elapsed", time.Since(start)),
	)

	return respond(c, rec, "")
}

func analysisFailure(input analysis.InputType) string {
	switch input {
	case analysis.InputURL:
		return "Failed to analyze URL content"
	case analysis.InputImage:
		return "Failed to analyze image content"
	default:
		return "Failed to analyze text content"
	}
}
