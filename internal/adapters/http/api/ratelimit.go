package api

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/okian/podium/pkg/logger"
)

const (
	defaultMaxClients = 10_000
	clientIdleTTL     = 10 * time.Minute
	defaultRatePrefix = "podium:ratelimit:"
)

// RateLimiter decides whether the client identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// LocalLimiter keeps one token bucket per client in process memory.
type LocalLimiter struct {
	mu         sync.Mutex
	limit      rate.Limit
	burst      int
	maxClients int
	clients    map[string]*client
	now        func() time.Time
}

type client struct {
	limiter *rate.Limiter
	seen    time.Time
}

// LimiterOption configures a LocalLimiter.
type LimiterOption func(*LocalLimiter)

// WithMaxClients bounds the number of tracked clients.
func WithMaxClients(n int) LimiterOption {
	return func(l *LocalLimiter) {
		if n > 0 {
			l.maxClients = n
		}
	}
}

// WithLimiterClock replaces time.Now, for tests.
func WithLimiterClock(now func() time.Time) LimiterOption {
	return func(l *LocalLimiter) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLocalLimiter allows rps requests per second per client with the given burst.
func NewLocalLimiter(rps float64, burst int, opts ...LimiterOption) *LocalLimiter {
	if burst < 1 {
		burst = 1
	}
	l := &LocalLimiter{
		limit:      rate.Limit(rps),
		burst:      burst,
		maxClients: defaultMaxClients,
		clients:    make(map[string]*client),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow implements RateLimiter.
func (l *LocalLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.sweep(now)
		}
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.seen = now
	return c.limiter.AllowN(now, 1)
}

// Clients returns the number of tracked clients.
func (l *LocalLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep makes room for one client. Refilled buckets and idle clients go
// first, then the least recently seen client.
func (l *LocalLimiter) sweep(now time.Time) {
	for k, c := range l.clients {
		if c.limiter.TokensAt(now) >= float64(l.burst) || now.Sub(c.seen) > clientIdleTTL {
			delete(l.clients, k)
		}
	}
	if len(l.clients) < l.maxClients {
		return
	}
	var (
		oldest string
		seen   time.Time
	)
	for k, c := range l.clients {
		if oldest == "" || c.seen.Before(seen) {
			oldest, seen = k, c.seen
		}
	}
	delete(l.clients, oldest)
}

// RedisLimiter shares buckets between replicas through redis (GCRA via
// redis_rate). When redis fails it falls back to a local bucket.
type RedisLimiter struct {
	limiter  *redis_rate.Limiter
	limit    redis_rate.Limit
	prefix   string
	fallback *LocalLimiter
}

// NewRedisLimiter builds a distributed limiter on rdb.
func NewRedisLimiter(rdb redis.UniversalClient, rps float64, burst int, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = defaultRatePrefix
	}
	if burst < 1 {
		burst = 1
	}
	return &RedisLimiter{
		limiter:  redis_rate.NewLimiter(rdb),
		limit:    redisLimit(rps, burst),
		prefix:   prefix,
		fallback: NewLocalLimiter(rps, burst),
	}
}

// Allow implements RateLimiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	res, err := l.limiter.Allow(ctx, l.prefix+key, l.limit)
	if err != nil {
		log().Warn(ctx, "redis rate limiter unavailable, using local bucket", logger.Error(err))
		return l.fallback.Allow(ctx, key)
	}
	return res.Allowed > 0
}

// redisLimit expresses a fractional rate as whole tokens per period.
func redisLimit(rps float64, burst int) redis_rate.Limit {
	if rps >= 1 {
		return redis_rate.Limit{Rate: int(math.Round(rps)), Burst: burst, Period: time.Second}
	}
	if rps <= 0 {
		rps = 1
	}
	return redis_rate.Limit{Rate: 1, Burst: burst, Period: time.Duration(float64(time.Second) / rps)}
}
