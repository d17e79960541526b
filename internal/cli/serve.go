package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/api/router"
	"github.com/fakenewsdetect/backend/internal/cache/memory"
	"github.com/fakenewsdetect/backend/internal/cache/redis"
	"github.com/fakenewsdetect/backend/internal/store"
	"github.com/fakenewsdetect/backend/pkg/config"
	"github.com/fakenewsdetect/backend/pkg/logger"
	"github.com/fakenewsdetect/backend/pkg/retry"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serve starts the HTTP API on the configured address and blocks until
SIGINT or SIGTERM, then drains in-flight requests.

Example:
  fakenewsdetect serve
  FAKENEWS_SERVER_PORT=8080 fakenewsdetect serve --config ./config.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting FakeNewsDetect API server", zap.String("version", Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, closeCache, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	app := router.New(router.Deps{
		Config:    cfg,
		Analyzer:  analyzer,
		Feedback:  store.NewFeedbackStore(),
		History:   store.NewHistoryStore(),
		AccessLog: cfg.Server.Development,
	})

	addr := cfg.Addr()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Server shutting down gracefully")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// buildAnalyzer returns the mock analyzer, wrapped in the configured verdict
// cache when caching is enabled. The returned func releases the cache.
func buildAnalyzer(ctx context.Context, cfg *config.Config) (analysis.Analyzer, func(), error) {
	mock := analysis.NewMockAnalyzer(analysis.Delays{
		Text:  cfg.Analysis.TextDelay,
		URL:   cfg.Analysis.URLDelay,
		Image: cfg.Analysis.ImageDelay,
	})
	noop := func() {}

	if !cfg.Cache.Enabled {
		return mock, noop, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		retryCfg := retry.DefaultConfig()
		retryCfg.Logger = logger.GetLogger()
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Cache.TTL,
			Retry:    retryCfg,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}
		return analysis.NewCachedAnalyzer(mock, client, "redis"), closeFn, nil
	default:
		cache := memory.New(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		return analysis.NewCachedAnalyzer(mock, cache, "memory"), noop, nil
	}
}
