package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/internal/cache/redis"
	"github.com/fakenewsdetect/backend/internal/verdict"
	"github.com/fakenewsdetect/backend/pkg/retry"
)

func newClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)

	c, err := redis.NewClient(context.Background(), redis.Options{
		Addr: srv.Addr(),
		TTL:  time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestClientRoundTrip(t *testing.T) {
	c, srv := newClient(t)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "text:abc")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Set(ctx, "text:abc", verdict.Archetype(verdict.Fake)))
	require.True(t, srv.Exists("verdict:text:abc"))
	require.Equal(t, time.Minute, srv.TTL("verdict:text:abc"))

	rec, found, err := c.Get(ctx, "text:abc")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, verdict.Archetype(verdict.Fake), rec)
}

func TestClientFlush(t *testing.T) {
	c, srv := newClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", verdict.Archetype(verdict.Real)))
	require.NoError(t, c.Set(ctx, "b", verdict.Archetype(verdict.Uncertain)))
	require.NoError(t, srv.Set("unrelated", "keep"))

	require.NoError(t, c.Flush(ctx))
	require.False(t, srv.Exists("verdict:a"))
	require.False(t, srv.Exists("verdict:b"))
	require.True(t, srv.Exists("unrelated"))
}

func TestClientReportsServerErrors(t *testing.T) {
	c, srv := newClient(t)
	srv.Close()

	_, found, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	require.False(t, found)
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := redis.NewClient(context.Background(), redis.Options{
		Addr:  addr,
		Retry: retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond},
	})
	require.Error(t, err)
}
