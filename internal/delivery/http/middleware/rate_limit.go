package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-interview-booking/pkg/apperror"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
}

// DefaultRateLimitConfig limits every client IP to limit requests per window
func DefaultRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// RateLimiter counts requests in Redis when a client is available and in
// per-key token buckets otherwise
type RateLimiter struct {
	config RateLimitConfig
	redis  *goredis.Client
	logger *zap.Logger

	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds a limiter; a nil client selects the in-memory buckets.
// A non-positive limit or window falls back to 100 requests per minute.
func NewRateLimiter(config RateLimitConfig, client *goredis.Client, logger *zap.Logger) *RateLimiter {
	if config.Limit <= 0 || config.Window <= 0 {
		logger.Warn("invalid rate limit, using 100 per minute",
			zap.Int("limit", config.Limit),
			zap.Duration("window", config.Window),
		)
		config.Limit, config.Window = 100, time.Minute
	}
	return &RateLimiter{
		config:  config,
		redis:   client,
		logger:  logger,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Middleware rejects requests over the limit with 429
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.config.KeyPrefix + l.config.KeyFunc(c)

		allowed, remaining, resetAt, err := l.allow(c.Request.Context(), key)
		if err != nil {
			if l.config.FailClosed {
				c.Error(apperror.New(apperror.KindRateLimited, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", err))
				c.Abort()
				return
			}
			l.logger.Warn("redis rate limit failed, using in-memory buckets", zap.Error(err))
			allowed, remaining, resetAt = l.allowLocal(key)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if !allowed {
			retryAfter := int(resetAt.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			l.logger.Info("rate limit triggered",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString(KeyRequestID)),
			)
			c.Error(apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Next()
	}
}

func (l *RateLimiter) allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	if l.redis == nil {
		allowed, remaining, resetAt := l.allowLocal(key)
		return allowed, remaining, resetAt, nil
	}

	ttlSeconds := int(l.config.Window.Seconds())
	result, err := rateLimitScript.Run(ctx, l.redis, []string{key}, ttlSeconds).Int64Slice()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(result) < 2 {
		return false, 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, ttl := int(result[0]), result[1]
	resetAt := l.now().Add(time.Duration(ttl) * time.Second)
	remaining := l.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= l.config.Limit, remaining, resetAt, nil
}

// allowLocal takes a token from the key's bucket. Buckets refill at
// Limit per Window with a burst of Limit.
func (l *RateLimiter) allowLocal(key string) (bool, int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		every := l.config.Window / time.Duration(l.config.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), l.config.Limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	remaining := int(b.limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return allowed, remaining, now.Add(l.config.Window)
}

// sweep drops buckets idle for a full window, at most once per window
func (l *RateLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.config.Window {
			delete(l.buckets, key)
		}
	}
	l.nextSweep = now.Add(l.config.Window)
}
