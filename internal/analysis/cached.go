package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/metrics"
	"github.com/fakenewsdetect/backend/internal/verdict"
	"github.com/fakenewsdetect/backend/pkg/logger"
	"github.com/fakenewsdetect/backend/pkg/utils"
)

// Cache stores verdicts keyed by a digest of the analysed input.
type Cache interface {
	Get(ctx context.Context, key string) (verdict.Record, bool, error)
	Set(ctx context.Context, key string, rec verdict.Record) error
}

// CachedAnalyzer answers repeated text and URL inputs from a Cache. Cache
// failures are logged and treated as misses. Images are never cached.
type CachedAnalyzer struct {
	next      Analyzer
	cache     Cache
	cacheType string
}

func NewCachedAnalyzer(next Analyzer, cache Cache, cacheType string) *CachedAnalyzer {
	return &CachedAnalyzer{
		next:      next,
		cache:     cache,
		cacheType: cacheType,
	}
}

func (a *CachedAnalyzer) AnalyzeText(ctx context.Context, in TextInput) (verdict.Record, error) {
	key := "text:" + utils.Hash(Normalize(in.Title, in.Content))
	return a.lookup(ctx, key, func() (verdict.Record, error) {
		return a.next.AnalyzeText(ctx, in)
	})
}

func (a *CachedAnalyzer) AnalyzeURL(ctx context.Context, in URLInput) (verdict.Record, error) {
	key := "url:" + utils.Hash(in.URL)
	return a.lookup(ctx, key, func() (verdict.Record, error) {
		return a.next.AnalyzeURL(ctx, in)
	})
}

func (a *CachedAnalyzer) AnalyzeImage(ctx context.Context, in ImageInput) (verdict.Record, error) {
	return a.next.AnalyzeImage(ctx, in)
}

func (a *CachedAnalyzer) lookup(ctx context.Context, key string, compute func() (verdict.Record, error)) (verdict.Record, error) {
	rec, found, err := a.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Verdict cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		metrics.CacheHits.WithLabelValues(a.cacheType).Inc()
		return rec, nil
	}
	metrics.CacheMisses.WithLabelValues(a.cacheType).Inc()

	rec, err = compute()
	if err != nil {
		return verdict.Record{}, err
	}

	if err := a.cache.Set(ctx, key, rec); err != nil {
		logger.Warn("Failed to cache verdict", zap.String("key", key), zap.Error(err))
	}
	return rec, nil
}
