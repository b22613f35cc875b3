package bootstrap

import (
	"time"

	"barbershop-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingLocation,
	),
)

// NewBookingLocation is the shop timezone all calendar math runs in.
func NewBookingLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Booking.Location()
}
