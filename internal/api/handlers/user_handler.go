package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/metrics"
	"github.com/fakenewsdetect/backend/internal/middleware/payload"
	"github.com/fakenewsdetect/backend/internal/store"
	"github.com/fakenewsdetect/backend/internal/verdict"
	"github.com/fakenewsdetect/backend/pkg/logger"
)

const defaultHistoryLimit = 20

// UserHandler serves the analysis history. The history is shared by every
// client; there is no per-user partitioning.
type UserHandler struct {
	history *store.HistoryStore
}

func NewUserHandler(history *store.HistoryStore) *UserHandler {
	return &UserHandler{history: history}
}

func (h *UserHandler) History(c *fiber.Ctx) error {
	page, limit := pageParams(c, defaultHistoryLimit)
	entries, total := h.history.List(page, limit)

	return respond(c, fiber.Map{
		"history":    entries,
		"pagination": store.NewPagination(page, limit, total),
	}, "")
}

// SaveAnalysis expects payload.Validate(validation.SaveAnalysisSchema) to
// run first.
func (h *UserHandler) SaveAnalysis(c *fiber.Ctx) error {
	v := payload.Values(c)

	entry := h.history.Append(store.HistoryEntry{
		AnalysisID: v.String("analysisId"),
		Verdict:    verdict.Kind(v.String("verdict")),
		Confidence: v.Float("confidence"),
		InputType:  analysis.InputType(v.String("inputType")),
		InputData:  v.Object("inputData"),
		Results:    v.Object("results"),
		IP:         c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	})

	metrics.HistoryEntries.Set(float64(h.history.Len()))
	logger.Info("Analysis saved to history",
		zap.Int64("history_id", entry.ID),
		zap.String("analysis_id", entry.AnalysisID),
	)

	return respond(c, fiber.Map{
		"historyId": entry.ID,
		"timestamp": entry.Timestamp,
	}, "Analysis saved to history")
}

// DeleteHistory answers 404 for unknown and non-numeric ids alike.
func (h *UserHandler) DeleteHistory(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || !h.history.Remove(id) {
		return fail(c, fiber.StatusNotFound, "Not Found", "Analysis not found in history")
	}

	metrics.HistoryEntries.Set(float64(h.history.Len()))
	logger.Info("Analysis deleted from history", zap.Int64("history_id", id))

	return respond(c, nil, "Analysis deleted from history")
}

func (h *UserHandler) Stats(c *fiber.Ctx) error {
	st := h.history.Stats()

	return respond(c, fiber.Map{
		"totalAnalyses": st.TotalAnalyses,
		"verdicts": fiber.Map{
			"real":      st.Verdicts[verdict.Real],
			"fake":      st.Verdicts[verdict.Fake],
			"uncertain": st.Verdicts[verdict.Uncertain],
		},
		"averageConfidence": st.AverageConfidence,
		"inputTypes": fiber.Map{
			"text":  st.InputTypes[analysis.InputText],
			"url":   st.InputTypes[analysis.InputURL],
			"image": st.InputTypes[analysis.InputImage],
		},
	}, "")
}
