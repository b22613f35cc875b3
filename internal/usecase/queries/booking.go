package queries

import (
	"context"
	"time"

	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID `json:"id"`
	ShopID          uuid.UUID `json:"shop_id"`
	BarberID        uuid.UUID `json:"barber_id"`
	BarberName      string    `json:"barber_name"`
	ServiceID       uuid.UUID `json:"service_id"`
	ServiceName     string    `json:"service_name"`
	Date            string    `json:"date"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	Note            *string   `json:"note,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByBarberDate(ctx context.Context, barberID uuid.UUID, date time.Time) ([]*BookingView, error)
}

type BarberReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.BarberSnapshot, error)
}

// BookingQueries backs the staff dashboard. Every lookup is scoped to the
// caller's shop; records of other shops read as not found.
type BookingQueries interface {
	GetByID(ctx context.Context, shopID, id uuid.UUID) (*BookingView, error)
	ListByBarberDate(ctx context.Context, shopID, barberID uuid.UUID, date time.Time) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	barbers  BarberReadStore
}

func NewBookingQueries(bookings BookingReadStore, barbers BarberReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, barbers: barbers}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, shopID, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if view.ShopID != shopID {
		return nil, errs.ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByBarberDate(ctx context.Context, shopID, barberID uuid.UUID, date time.Time) ([]*BookingView, error) {
	if _, err := findBarberInShop(ctx, q.barbers, shopID, barberID); err != nil {
		return nil, err
	}

	views, err := q.bookings.ListByBarberDate(ctx, barberID, date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if views == nil {
		views = []*BookingView{}
	}
	return views, nil
}

// findBarberInShop treats a barber of another shop as missing. A nil shopID
// skips the tenant check.
func findBarberInShop(ctx context.Context, store BarberReadStore, shopID, barberID uuid.UUID) (*shared.BarberSnapshot, error) {
	snap, err := store.FindByID(ctx, barberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBarberNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if shopID != uuid.Nil && snap.ShopID != shopID {
		return nil, errs.ErrBarberNotFound
	}
	return snap, nil
}
