package readstore

import (
	"context"
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/infra/dbquery"
	"barbershop-booking/internal/pkg/pgconv"
	"barbershop-booking/internal/usecase/queries"
	"barbershop-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadQueries interface {
	GetBookingViewByID(ctx context.Context, db db.DBTX, id uuid.UUID) (dbquery.BookingViewRow, error)
	GetBookingForUpdate(ctx context.Context, db db.DBTX, id uuid.UUID) (dbquery.Booking, error)
	ListBookingViewsByBarberDate(ctx context.Context, db db.DBTX, barberID uuid.UUID, date pgtype.Date) ([]dbquery.BookingViewRow, error)
	ListActiveAppointments(ctx context.Context, db db.DBTX, barberID uuid.UUID, date pgtype.Date) ([]dbquery.AppointmentRow, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      db.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db db.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return toBookingViewFromRow(row), nil
}

func (r *BookingReadStore) ListByBarberDate(ctx context.Context, barberID uuid.UUID, date time.Time) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingViewsByBarberDate(ctx, r.db, barberID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by barber and date", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = toBookingViewFromRow(row)
	}

	return result, nil
}

// FindSnapshotForUpdate locks the booking row for the rest of the transaction.
func (r *BookingReadStore) FindSnapshotForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}

	return &shared.BookingSnapshot{
		ID:              row.ID,
		ShopID:          row.ShopID,
		BarberID:        row.BarberID,
		ServiceID:       row.ServiceID,
		Date:            pgconv.DateFromPgtype(row.BookingDate),
		StartMinute:     int(row.StartMinute),
		DurationMinutes: int(row.DurationMinutes),
		CustomerName:    row.CustomerName,
		CustomerPhone:   row.CustomerPhone,
		Note:            pgconv.StringPtrFromPgtype(row.Note),
		Status:          row.Status,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

// ListActiveAppointments is the confirmed-booking snapshot the overlap check runs against.
func (r *BookingReadStore) ListActiveAppointments(ctx context.Context, barberID uuid.UUID, date time.Time) ([]availability.Appointment, error) {
	rows, err := r.queries.ListActiveAppointments(ctx, r.db, barberID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active appointments", err)
	}

	result := make([]availability.Appointment, len(rows))
	for i, row := range rows {
		result[i] = availability.Appointment{
			Time:            availability.TimeOfDay(row.StartMinute),
			DurationMinutes: int(row.DurationMinutes),
		}
	}

	return result, nil
}

func toBookingViewFromRow(row dbquery.BookingViewRow) *queries.BookingView {
	start := availability.TimeOfDay(row.StartMinute)
	return &queries.BookingView{
		ID:              row.ID,
		ShopID:          row.ShopID,
		BarberID:        row.BarberID,
		BarberName:      row.BarberName,
		ServiceID:       row.ServiceID,
		ServiceName:     row.ServiceName,
		Date:            pgconv.DateFromPgtype(row.BookingDate).Format(booking.DateLayout),
		Start:           start.String(),
		End:             availability.TimeOfDay(int(start) + int(row.DurationMinutes)).String(),
		DurationMinutes: int(row.DurationMinutes),
		CustomerName:    row.CustomerName,
		CustomerPhone:   row.CustomerPhone,
		Note:            pgconv.StringPtrFromPgtype(row.Note),
		Status:          row.Status,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
