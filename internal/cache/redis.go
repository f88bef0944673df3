// Package cache is a Redis-backed cache of cleaning results keyed by the
// SHA-256 of the raw text. Batch jobs over overlapping court dumps hit the
// same documents repeatedly; the cache skips re-cleaning them. The core
// pipeline itself never touches it.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/legalworkbench/legal-text-extractor/internal/cleaner"
	"github.com/legalworkbench/legal-text-extractor/internal/logger"
)

// ResultCache caches cleaning results in Redis.
type ResultCache struct {
	client *redis.Client
	config Config
	logger *logger.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New connects to Redis and returns a ResultCache. The connection is
// verified before the cache is handed out.
func New(cfg Config, log *logger.Logger) (*ResultCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.PoolSize = cfg.MaxConnections
	opts.MinIdleConns = cfg.MinIdleConns

	rc := &ResultCache{
		client: redis.NewClient(opts),
		config: cfg,
		logger: log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rc.client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("result cache initialized",
		zap.Int("max_connections", cfg.MaxConnections),
		zap.Duration("default_ttl", cfg.DefaultTTL),
	)
	return rc, nil
}

// Key returns the cache key for a raw document text.
func (rc *ResultCache) Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return rc.config.KeyPrefix + hex.EncodeToString(sum[:])
}

// Get looks up the cleaning result for text. A miss returns (nil, nil);
// Redis errors are returned so the caller can decide to clean anyway.
func (rc *ResultCache) Get(ctx context.Context, text string) (*cleaner.Result, error) {
	data, err := rc.client.Get(ctx, rc.Key(text)).Bytes()
	if err == redis.Nil {
		rc.misses.Add(1)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var result cleaner.Result
	if err := json.Unmarshal(data, &result); err != nil {
		rc.misses.Add(1)
		return nil, fmt.Errorf("cache entry corrupt: %w", err)
	}
	// OriginalText is never serialized; refill it from the lookup key
	// input so the cached result is indistinguishable from a fresh one.
	result.OriginalText = text

	rc.hits.Add(1)
	return &result, nil
}

// Set stores the cleaning result for text with the configured TTL.
func (rc *ResultCache) Set(ctx context.Context, text string, result *cleaner.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := rc.client.Set(ctx, rc.Key(text), data, rc.config.DefaultTTL).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Stats returns hit/miss counters since startup.
func (rc *ResultCache) Stats() Stats {
	hits, misses := rc.hits.Load(), rc.misses.Load()
	rate := 0.0
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{Hits: hits, Misses: misses, HitRate: rate}
}

// Close releases the Redis connection pool.
func (rc *ResultCache) Close() error {
	return rc.client.Close()
}
