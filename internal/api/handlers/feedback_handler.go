package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/metrics"
	"github.com/fakenewsdetect/backend/internal/middleware/payload"
	"github.com/fakenewsdetect/backend/internal/store"
	"github.com/fakenewsdetect/backend/pkg/logger"
)

const defaultFeedbackLimit = 50

type FeedbackHandler struct {
	store *store.FeedbackStore
}

func NewFeedbackHandler(s *store.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{store: s}
}

// Submit expects payload.Validate(validation.FeedbackSchema) to run first.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	v := payload.Values(c)
	comment, _ := v.OptionalString("comment")
	timestamp, _ := v.OptionalString("timestamp")

	entry := h.store.Append(store.FeedbackEntry{
		AnalysisID: v.String("analysisId"),
		Feedback:   store.Sentiment(v.String("feedback")),
		Comment:    comment,
		Timestamp:  timestamp,
		IP:         c.IP(),
		UserAgent:  c.Get(fiber.HeaderUserAgent),
	})

	metrics.FeedbackTotal.WithLabelValues(string(entry.Feedback)).Inc()
	metrics.FeedbackSatisfaction.Set(h.store.Stats().Satisfaction)
	logger.Info("Feedback received",
		zap.Int64("feedback_id", entry.ID),
		zap.String("analysis_id", entry.AnalysisID),
		zap.String("feedback", string(entry.Feedback)),
	)

	return respond(c, fiber.Map{
		"feedbackId": entry.ID,
		"timestamp":  entry.Timestamp,
	}, "Feedback submitted successfully")
}

func (h *FeedbackHandler) Stats(c *fiber.Ctx) error {
	st := h.store.Stats()

	return respond(c, fiber.Map{
		"total":        st.Total,
		"positive":     st.Positive,
		"negative":     st.Negative,
		"satisfaction": satisfaction(st),
	}, "")
}

func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	page, limit := pageParams(c, defaultFeedbackLimit)
	entries, total := h.store.List(page, limit)

	return respond(c, fiber.Map{
		"feedback":   entries,
		"pagination": store.NewPagination(page, limit, total),
	}, "")
}

// satisfaction renders the percentage as a one-decimal string ("75.0"), or
// the number 0 when nothing has been submitted. Existing clients rely on
// both shapes.
func satisfaction(st store.FeedbackStats) any {
	if st.Total == 0 {
		return 0
	}
	return strconv.FormatFloat(st.Satisfaction, 'f', 1, 64)
}
