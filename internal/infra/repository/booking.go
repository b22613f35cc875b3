package repository

import (
	"context"

	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/infra/dbquery"
	"barbershop-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db db.DBTX, arg dbquery.CreateBookingParams) (uuid.UUID, error)
	UpdateBookingStatus(ctx context.Context, db db.DBTX, arg dbquery.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
}

func NewBookingRepository(queries BookingWriteQueries) *BookingRepository {
	return &BookingRepository{
		queries: queries,
	}
}

// Create maps a unique violation on the active-slot index to KindConflict.
func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	params := dbquery.CreateBookingParams{
		ID:              b.ID(),
		BarberID:        b.BarberID(),
		ServiceID:       b.ServiceID(),
		BookingDate:     pgconv.DateToPgtype(b.Date()),
		StartMinute:     int32(b.Start().Minutes()),
		DurationMinutes: int32(b.DurationMinutes()),
		CustomerName:    b.Customer().Name(),
		CustomerPhone:   b.Customer().Phone(),
		Note:            pgconv.OptionalText(b.Note().String()),
		Status:          b.Status().String(),
		CreatedAt:       pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(b.UpdatedAt()),
	}

	resultID, err := r.queries.CreateBooking(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return resultID, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	params := dbquery.UpdateBookingStatusParams{
		ID:        b.ID(),
		Status:    b.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
	}

	affected, err := r.queries.UpdateBookingStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}
