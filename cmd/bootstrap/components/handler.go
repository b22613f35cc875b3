package components

import (
	"barbershop-booking/internal/handler"
	"barbershop-booking/internal/handler/api"
	"barbershop-booking/internal/handler/middleware"
	"barbershop-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

// NewRateLimiter returns nil when limiting is disabled.
func NewRateLimiter(cfg config.Config, store middleware.CounterStore) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(store, cfg.RateLimit.Limit, cfg.RateLimit.Window, "rl:public")
}

func NewHandlers(availability *api.AvailabilityHandler, booking *api.BookingHandler) handler.Handlers {
	return handler.Handlers{
		Availability: availability,
		Booking:      booking,
	}
}

func NewMiddlewares(logger *middleware.Logger, auth *middleware.AuthMiddleware, limiter *middleware.RateLimiter) handler.Middlewares {
	return handler.Middlewares{
		Logger:      logger,
		Auth:        auth,
		RateLimiter: limiter,
	}
}
