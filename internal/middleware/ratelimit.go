package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines the limit for a route group.
type RateLimitConfig struct {
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on
	Store  Store                    // Defaults to an in-memory store
}

// Store counts requests per key in fixed windows.
type Store interface {
	// Hit records one request and returns the count in the current window and
	// when that window ends.
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// entry tracks request count and window start for a single key.
type entry struct {
	count     int
	windowEnd time.Time
}

// MemoryStore keeps counters in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewMemoryStore creates a store and starts its background cleanup.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{entries: make(map[string]*entry)}
	go s.cleanup()
	return s
}

func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, exists := s.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.windowEnd, nil
}

func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for key, e := range s.entries {
			if now.After(e.windowEnd) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}

// RedisStore shares counters between processes. Each key is incremented and
// given its expiry in one transaction.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	k := s.prefix + key
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, window)
		ttl = p.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = window
	}
	return int(incr.Val()), time.Now().Add(remaining), nil
}

// RateLimiter enforces a fixed-window request limit.
type RateLimiter struct {
	config RateLimitConfig
}

// NewRateLimiter creates a rate limiter with the given config.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	return &RateLimiter{config: cfg}
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
// A failing store lets the request through.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := rl.config.KeyFn(c)

		count, resetAt, err := rl.config.Store.Hit(c.Context(), key, rl.config.Window)
		if err != nil {
			Logger.Warn().Err(err).Msg("rate limit store unavailable")
			return c.Next()
		}

		remaining := rl.config.Max - count
		setRateLimitHeaders(c, rl.config.Max, remaining, resetAt)

		if remaining < 0 {
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       "RATE_LIMITED",
					"message":    fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
					"retryAfter": retryAfter,
				},
			})
		}

		return c.Next()
	}
}

// Allow checks if a request with the given key is allowed.
func (rl *RateLimiter) Allow(key string) bool {
	count, _, err := rl.config.Store.Hit(context.Background(), key, rl.config.Window)
	if err != nil {
		return true
	}
	return count <= rl.config.Max
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(remaining, 0)))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// NewAPIRateLimiter limits the API to perMinute requests per IP. A nil rdb
// keeps counters in memory.
func NewAPIRateLimiter(perMinute int, rdb *redis.Client) *RateLimiter {
	var store Store
	if rdb != nil {
		store = NewRedisStore(rdb, "tubedash:ratelimit:")
	}
	return NewRateLimiter(RateLimitConfig{
		Max:    perMinute,
		Window: time.Minute,
		KeyFn:  KeyByIP,
		Store:  store,
	})
}
