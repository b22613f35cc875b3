package bootstrap

import (
	"context"
	"log/slog"

	"barbershop-booking/internal/handler/middleware"
	"barbershop-booking/internal/pkg/clock"
	"barbershop-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewCounterStore,
	),
)

// NewCounterStore uses Redis when REDIS_ADDR is set so that every instance
// shares one rate limit budget, and process memory otherwise.
func NewCounterStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) middleware.CounterStore {
	if cfg.Redis.Addr == "" {
		logger.Info("rate limiter uses in-memory counters")
		return middleware.NewMemoryCounterStore(clock.NewRealClock())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				// the limiter fails open, so an unreachable redis is not fatal
				logger.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	logger.Info("rate limiter uses redis counters", "addr", cfg.Redis.Addr)
	return middleware.NewRedisCounterStore(rdb)
}
