package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// Cache stores ranked match lists per viewer.
type Cache interface {
	// Get returns the cached list; a miss is (nil, false, nil).
	Get(ctx context.Context, viewerID uuid.UUID) ([]Match, bool, error)
	Set(ctx context.Context, viewerID uuid.UUID, matches []Match) error
	// Invalidate drops every cached list.
	Invalidate(ctx context.Context) error
}

// CacheConfig contains match cache configuration.
type CacheConfig struct {
	Prefix           string
	TTL              time.Duration
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Prefix:           "matches:",
		TTL:              5 * time.Minute,
		FailureThreshold: 5,
		BreakerTimeout:   30 * time.Second,
	}
}

// RedisCache is a Cache on Redis guarded by a circuit breaker.
//
// Lists are stored under a generation number; Invalidate bumps the
// generation and old lists age out by TTL.
type RedisCache struct {
	client  redis.UniversalClient
	breaker *gobreaker.CircuitBreaker[[]byte]
	prefix  string
	ttl     time.Duration
}

// NewRedisCache creates a new match cache.
func NewRedisCache(client redis.UniversalClient, cfg *CacheConfig) *RedisCache {
	if cfg == nil {
		cfg = DefaultCacheConfig()
	}
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "match-cache",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	}

	return &RedisCache{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		prefix:  cfg.Prefix,
		ttl:     cfg.TTL,
	}
}

// State returns the breaker state.
func (c *RedisCache) State() gobreaker.State {
	return c.breaker.State()
}

// Get retrieves a viewer's ranked list.
func (c *RedisCache) Get(ctx context.Context, viewerID uuid.UUID) ([]Match, bool, error) {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		key, err := c.key(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		data, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("get from cache: %w", err)
	}
	if data == nil {
		return nil, false, nil
	}

	var matches []Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached matches: %w", err)
	}
	return matches, true, nil
}

// Set stores a viewer's ranked list.
func (c *RedisCache) Set(ctx context.Context, viewerID uuid.UUID, matches []Match) error {
	data, err := json.Marshal(matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}

	_, err = c.breaker.Execute(func() ([]byte, error) {
		key, err := c.key(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		return nil, c.client.Set(ctx, key, data, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("set in cache: %w", err)
	}
	return nil
}

// Invalidate bumps the generation so no existing list is read again.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.client.Incr(ctx, c.generationKey()).Err()
	})
	if err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	return nil
}

func (c *RedisCache) key(ctx context.Context, viewerID uuid.UUID) (string, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%sv%d:%s", c.prefix, gen, viewerID), nil
}

func (c *RedisCache) generationKey() string {
	return c.prefix + "generation"
}

var _ Cache = (*RedisCache)(nil)

// NopCache never stores anything. Used when Redis is not configured.
type NopCache struct{}

// Get always misses.
func (NopCache) Get(context.Context, uuid.UUID) ([]Match, bool, error) { return nil, false, nil }

// Set does nothing.
func (NopCache) Set(context.Context, uuid.UUID, []Match) error { return nil }

// Invalidate does nothing.
func (NopCache) Invalidate(context.Context) error { return nil }
