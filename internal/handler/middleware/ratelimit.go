package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"barbershop-booking/internal/handler/httperr"
	"barbershop-booking/internal/pkg/clock"
	"barbershop-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var errRateLimited = errs.New("rate limit exceeded")

// CounterStore increments the request counter of key within a fixed window and
// returns the new count.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type RateLimiter struct {
	store    CounterStore
	limit    int
	window   time.Duration
	prefix   string
	failOpen bool
}

func NewRateLimiter(store CounterStore, limit int, window time.Duration, prefix string) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{store: store, limit: limit, window: window, prefix: prefix, failOpen: true}
}

// Middleware limits per client IP. Store errors let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.prefix + ":" + c.ClientIP()
		count, err := rl.store.Incr(c.Request.Context(), key, rl.window)
		if err != nil {
			slog.Warn("rate limiter store error", "error", err.Error())
			if rl.failOpen {
				c.Next()
				return
			}
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Rate limiter unavailable", nil)
			return
		}

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}

var redisFixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounterStore shares counters between instances.
type RedisCounterStore struct {
	rdb redis.Scripter
}

func NewRedisCounterStore(rdb redis.Scripter) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = int64(time.Minute / time.Millisecond)
	}
	res, err := redisFixedWindowScript.Run(ctx, s.rdb, []string{key}, ms).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// MemoryCounterStore keeps counters in process, for single-instance setups.
type MemoryCounterStore struct {
	clock    clock.Clock
	mu       sync.Mutex
	counters map[string]*windowCounter
}

type windowCounter struct {
	count     int64
	resetTime time.Time
}

func NewMemoryCounterStore(clk clock.Clock) *MemoryCounterStore {
	return &MemoryCounterStore{
		clock:    clk,
		counters: map[string]*windowCounter{},
	}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	wc := s.counters[key]
	if wc == nil || !now.Before(wc.resetTime) {
		s.counters[key] = &windowCounter{count: 1, resetTime: now.Add(window)}
		return 1, nil
	}
	wc.count++
	return wc.count, nil
}
