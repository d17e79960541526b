package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_analysis_total",
			Help: "Total number of completed analyses",
		},
		[]string{"input_type", "verdict"},
	)

	AnalysisErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_analysis_errors_total",
			Help: "Total number of failed analyses",
		},
		[]string{"input_type"},
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fakenews_analysis_duration_seconds",
			Help:    "Analysis duration in seconds, simulated latency included",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 3, 5, 10},
		},
		[]string{"input_type"},
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_validation_failures_total",
			Help: "Requests rejected by validation",
		},
		[]string{"route"},
	)

	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_feedback_total",
			Help: "Total feedback submissions",
		},
		[]string{"sentiment"},
	)

	FeedbackSatisfaction = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fakenews_feedback_satisfaction",
			Help: "Share of positive feedback, in percent",
		},
	)

	HistoryEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fakenews_history_entries",
			Help: "Entries currently held in the analysis history",
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_cache_hits_total",
			Help: "Total verdict cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_cache_misses_total",
			Help: "Total verdict cache misses",
		},
		[]string{"cache_type"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fakenews_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			AnalysisTotal,
			AnalysisErrors,
			AnalysisDuration,
			ValidationFailures,
			FeedbackTotal,
			FeedbackSatisfaction,
			HistoryEntries,
			CacheHits,
			CacheMisses,
			RateLimited,
		)
	})
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
