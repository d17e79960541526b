// Package router assembles the fiber application: middleware chain, routes
// and the central error handler.
package router

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/api/handlers"
	"github.com/fakenewsdetect/backend/internal/metrics"
	"github.com/fakenewsdetect/backend/internal/middleware/payload"
	"github.com/fakenewsdetect/backend/internal/middleware/ratelimit"
	"github.com/fakenewsdetect/backend/internal/middleware/requestid"
	"github.com/fakenewsdetect/backend/internal/middleware/security"
	"github.com/fakenewsdetect/backend/internal/middleware/upload"
	"github.com/fakenewsdetect/backend/internal/store"
	"github.com/fakenewsdetect/backend/internal/validation"
	"github.com/fakenewsdetect/backend/pkg/config"
	"github.com/fakenewsdetect/backend/pkg/logger"
)

type Deps struct {
	Config   *config.Config
	Analyzer analysis.Analyzer
	Feedback *store.FeedbackStore
	History  *store.HistoryStore
	// AccessLog enables fiber's per-request log line.
	AccessLog bool
}

func New(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:               "fakenewsdetect",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if d.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		IsDevelopment:  cfg.Server.Development,
	}))

	if cfg.Metrics.Enabled {
		metrics.Init()
		app.Get(cfg.Metrics.Path, metrics.MetricsHandler())
	}

	analysisHandler := handlers.NewAnalysisHandler(d.Analyzer, cfg.Analysis.Timeout)
	feedbackHandler := handlers.NewFeedbackHandler(d.Feedback)
	userHandler := handlers.NewUserHandler(d.History)
	healthHandler := handlers.NewHealthHandler()
	wsHandler := handlers.NewWebSocketHandler(d.Analyzer, cfg.Analysis.Timeout)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	if cfg.RateLimit.Enabled {
		rl := ratelimit.New(ratelimit.Config{
			MaxRequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:                cfg.RateLimit.Burst,
			Logger:               logger.GetLogger(),
		})
		api.Use(rl.Middleware())
	}

	analyze := api.Group("/analyze")
	analyze.Post("/text", payload.Validate(validation.TextSchema, "analyze_text"), analysisHandler.AnalyzeText)
	analyze.Post("/url", payload.Validate(validation.URLSchema, "analyze_url"), analysisHandler.AnalyzeURL)
	analyze.Post("/image", upload.Image(upload.Config{
		Field:   "image",
		MaxSize: cfg.Analysis.MaxImageSize,
	}), analysisHandler.AnalyzeImage)

	feedback := api.Group("/feedback")
	feedback.Post("/", payload.Validate(validation.FeedbackSchema, "feedback"), feedbackHandler.Submit)
	feedback.Get("/stats", feedbackHandler.Stats)
	feedback.Get("/", feedbackHandler.List)

	user := api.Group("/user")
	user.Get("/history", userHandler.History)
	user.Post("/save-analysis", payload.Validate(validation.SaveAnalysisSchema, "save_analysis"), userHandler.SaveAnalysis)
	user.Delete("/history/:id", userHandler.DeleteHistory)
	user.Get("/stats", userHandler.Stats)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/analyze", websocket.New(wsHandler.HandleConnection))

	return app
}

// errorHandler shapes errors that escape the handlers into the API's
// failure envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusRequestEntityTooLarge:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Validation Error",
				"message": "File too large",
			})
		case fiber.StatusNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Not Found",
				"message": "Route " + c.Method() + " " + c.Path() + " not found",
			})
		}
		if fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(fiber.Map{
				"error":   fe.Message,
				"message": fe.Message,
			})
		}
	}

	logger.Error("Unhandled request error",
		zap.Error(err),
		zap.String("request_id", requestid.Get(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"message": "Something went wrong",
	})
}
