package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fakenewsdetect/backend/internal/verdict"
	"github.com/fakenewsdetect/backend/pkg/circuitbreaker"
	"github.com/fakenewsdetect/backend/pkg/logger"
	"github.com/fakenewsdetect/backend/pkg/retry"
)

const keyPrefix = "verdict:"

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Retry    retry.Config
}

// Client caches verdict records in Redis. Calls go through a circuit
// breaker so an unreachable server fails fast instead of adding latency to
// every analysis.
type Client struct {
	client *redis.Client
	ttl    time.Duration
	cb     *circuitbreaker.CircuitBreaker
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	err := retry.Do(ctx, opts.Retry, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", opts.Addr))

	return &Client{
		client: client,
		ttl:    opts.TTL,
		cb: circuitbreaker.New("redis", circuitbreaker.Config{
			FailureThreshold: 5,
			SuccessThreshold: 2,
			OpenTimeout:      30 * time.Second,
			Logger:           logger.GetLogger(),
		}),
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Get(ctx context.Context, key string) (verdict.Record, bool, error) {
	var data []byte
	err := c.cb.Execute(func() error {
		var err error
		data, err = c.client.Get(ctx, keyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		return verdict.Record{}, false, fmt.Errorf("failed to get verdict cache: %w", err)
	}
	if data == nil {
		return verdict.Record{}, false, nil
	}

	var rec verdict.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return verdict.Record{}, false, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}

	logger.Debug("Verdict cache hit", zap.String("key", key))
	return rec, true, nil
}

func (c *Client) Set(ctx context.Context, key string, rec verdict.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	err = c.cb.Execute(func() error {
		return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to set verdict cache: %w", err)
	}

	logger.Debug("Verdict cached", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// Flush removes every cached verdict.
func (c *Client) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Failed to delete cache key", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to iterate cache keys: %w", err)
	}
	return nil
}
