package analysis_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/verdict"
)

type mapCache struct {
	mu      sync.Mutex
	items   map[string]verdict.Record
	failGet bool
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string]verdict.Record)}
}

func (c *mapCache) Get(_ context.Context, key string) (verdict.Record, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return verdict.Record{}, false, errors.New("cache down")
	}
	rec, ok := c.items[key]
	return rec, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, rec verdict.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = rec
	return nil
}

type countingAnalyzer struct {
	analysis.Analyzer
	text, url, image int
}

func (c *countingAnalyzer) AnalyzeText(ctx context.Context, in analysis.TextInput) (verdict.Record, error) {
	c.text++
	return c.Analyzer.AnalyzeText(ctx, in)
}

func (c *countingAnalyzer) AnalyzeURL(ctx context.Context, in analysis.URLInput) (verdict.Record, error) {
	c.url++
	return c.Analyzer.AnalyzeURL(ctx, in)
}

func (c *countingAnalyzer) AnalyzeImage(ctx context.Context, in analysis.ImageInput) (verdict.Record, error) {
	c.image++
	return c.Analyzer.AnalyzeImage(ctx, in)
}

func TestCachedAnalyzerReusesTextVerdict(t *testing.T) {
	inner := &countingAnalyzer{Analyzer: instant()}
	a := analysis.NewCachedAnalyzer(inner, newMapCache(), "test")
	ctx := context.Background()

	first, err := a.AnalyzeText(ctx, analysis.TextInput{Title: "Breaking", Content: "urgent"})
	require.NoError(t, err)

	// Same normalized text, different casing.
	second, err := a.AnalyzeText(ctx, analysis.TextInput{Title: "BREAKING", Content: "URGENT"})
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, inner.text)
}

func TestCachedAnalyzerURLAndImage(t *testing.T) {
	inner := &countingAnalyzer{Analyzer: instant()}
	a := analysis.NewCachedAnalyzer(inner, newMapCache(), "test")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := a.AnalyzeURL(ctx, analysis.URLInput{URL: "https://example.com"})
		require.NoError(t, err)
		_, err = a.AnalyzeImage(ctx, analysis.ImageInput{MimeType: "image/png"})
		require.NoError(t, err)
	}

	require.Equal(t, 1, inner.url)
	require.Equal(t, 3, inner.image)
}

func TestCachedAnalyzerFallsThroughOnCacheError(t *testing.T) {
	cache := newMapCache()
	cache.failGet = true
	inner := &countingAnalyzer{Analyzer: instant()}
	a := analysis.NewCachedAnalyzer(inner, cache, "test")

	rec, err := a.AnalyzeText(context.Background(), analysis.TextInput{Title: "Official", Content: "verified"})
	require.NoError(t, err)
	require.Equal(t, verdict.Real, rec.Verdict)
	require.Equal(t, 1, inner.text)
}
