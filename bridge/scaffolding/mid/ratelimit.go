package mid

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/tasktrack/bridge/scaffolding/errs"
	"github.com/jrazmi/tasktrack/infrastructure/web"
	"github.com/jrazmi/tasktrack/sdk/logger"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter counts requests per key over a sliding window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type rateLimitOptions struct {
	trustProxy bool
}

// RateLimitOption configures RateLimit.
type RateLimitOption func(*rateLimitOptions)

// WithTrustedProxy keys requests on X-Forwarded-For / X-Real-IP. Only use it
// when a proxy in front of the server sets those headers; otherwise clients
// can pick their own key.
func WithTrustedProxy(trust bool) RateLimitOption {
	return func(o *rateLimitOptions) {
		o.trustProxy = trust
	}
}

// RateLimit rejects requests over the limiter's budget with 429. Keys are
// derived from the client address. A limiter error lets the request through.
func RateLimit(log *logger.Logger, limiter Limiter, opts ...RateLimitOption) web.Middleware {
	var o rateLimitOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			d, err := limiter.Allow(ctx, clientIP(r, o.trustProxy))
			if err != nil {
				log.WarnContext(ctx, "rate limiter unavailable", "err", err)
				return next(ctx, r)
			}

			if w := web.GetWriter(ctx); w != nil {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.Reset.Unix(), 10))
				if !d.Allowed {
					retry := max(int(time.Until(d.Reset).Seconds()), 1)
					w.Header().Set("Retry-After", strconv.Itoa(retry))
				}
			}

			if !d.Allowed {
				return errs.Newf(errs.TooManyRequests, "Too many requests, please try again later.")
			}

			return next(ctx, r)
		}
	}
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			return strings.TrimSpace(first)
		}
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			return realIP
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// =============================================================================

// RedisLimiter keeps one sorted set per key scored by request time.
type RedisLimiter struct {
	client    redis.UniversalClient
	limit     int
	window    time.Duration
	keyPrefix string
	now       func() time.Time
}

func NewRedisLimiter(client redis.UniversalClient, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: "tasktrack:ratelimit:",
		now:       time.Now,
	}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := rl.now()
	windowStart := now.Add(-rl.window)
	key = rl.keyPrefix + key

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	zcard := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	})
	pipe.Expire(ctx, key, rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("ratelimit pipeline: %w", err)
	}

	count := int(zcard.Val())
	if count >= rl.limit {
		reset := now.Add(rl.window)
		oldest, err := rl.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			reset = time.Unix(0, int64(oldest[0].Score)).Add(rl.window)
		}
		return Decision{Allowed: false, Limit: rl.limit, Remaining: 0, Reset: reset}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     rl.limit,
		Remaining: max(rl.limit-count-1, 0),
		Reset:     now.Add(rl.window),
	}, nil
}

// =============================================================================

// MemoryLimiter is the single process sliding window used when no redis is
// configured.
type MemoryLimiter struct {
	mu        sync.Mutex
	hits      map[string][]time.Time
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (ml *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	ml.now = now
	return ml
}

func (ml *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := ml.now()
	if ml.limit <= 0 {
		return Decision{Allowed: true, Reset: now}, nil
	}
	windowStart := now.Add(-ml.window)

	if now.Sub(ml.lastSweep) >= ml.window {
		ml.sweep(windowStart)
		ml.lastSweep = now
	}

	hits := ml.hits[key]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(windowStart) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= ml.limit {
		ml.hits[key] = kept
		return Decision{Allowed: false, Limit: ml.limit, Remaining: 0, Reset: kept[0].Add(ml.window)}, nil
	}

	kept = append(kept, now)
	ml.hits[key] = kept

	return Decision{
		Allowed:   true,
		Limit:     ml.limit,
		Remaining: ml.limit - len(kept),
		Reset:     now.Add(ml.window),
	}, nil
}

// Len reports how many keys are currently tracked.
func (ml *MemoryLimiter) Len() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.hits)
}

// sweep drops keys whose newest hit is outside the window.
func (ml *MemoryLimiter) sweep(windowStart time.Time) {
	for key, hits := range ml.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(windowStart) {
			delete(ml.hits, key)
		}
	}
}
