package shared

import (
	"context"
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	// LockBarber takes a row lock that serializes concurrent bookings for the
	// same barber until the surrounding transaction ends.
	LockBarber(ctx context.Context, id uuid.UUID) (*BarberSnapshot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	ActiveAppointments(ctx context.Context, barberID uuid.UUID, date time.Time) ([]availability.Appointment, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
