// Package dbquery holds the SQL statements of the service and thin typed
// wrappers around them. Every method takes the DBTX to run on, so the same
// Queries value serves pooled reads and transactional writes.
package dbquery

import (
	"context"

	"barbershop-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Queries struct{}

func New() *Queries {
	return &Queries{}
}

const barberColumns = `id, shop_id, name, work_start_minute, work_end_minute,
	slot_interval_minutes, lead_time_min, require_fit_before_close, created_at, updated_at`

const getBarberByID = `SELECT ` + barberColumns + ` FROM barbers WHERE id = $1`

func (q *Queries) GetBarberByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Barber, error) {
	rows, err := dbtx.Query(ctx, getBarberByID, id)
	if err != nil {
		return Barber{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Barber])
}

const lockBarberByID = getBarberByID + ` FOR UPDATE`

func (q *Queries) LockBarberByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Barber, error) {
	rows, err := dbtx.Query(ctx, lockBarberByID, id)
	if err != nil {
		return Barber{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Barber])
}

const getServiceByID = `SELECT id, shop_id, name, duration_label, price_cents, created_at, updated_at
	FROM services WHERE id = $1`

func (q *Queries) GetServiceByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Service, error) {
	rows, err := dbtx.Query(ctx, getServiceByID, id)
	if err != nil {
		return Service{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Service])
}

const bookingColumns = `b.id, br.shop_id, b.barber_id, b.service_id, b.booking_date, b.start_minute,
	b.duration_minutes, b.customer_name, b.customer_phone, b.note, b.status, b.created_at, b.updated_at`

const getBookingByID = `SELECT ` + bookingColumns + `
	FROM bookings b
	JOIN barbers br ON br.id = b.barber_id
	WHERE b.id = $1
	FOR UPDATE OF b`

// GetBookingForUpdate row-locks the booking; call it inside a transaction.
func (q *Queries) GetBookingForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (Booking, error) {
	rows, err := dbtx.Query(ctx, getBookingByID, id)
	if err != nil {
		return Booking{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Booking])
}

const getBookingViewByID = `SELECT ` + bookingColumns + `, br.name AS barber_name, s.name AS service_name
	FROM bookings b
	JOIN barbers br ON br.id = b.barber_id
	JOIN services s ON s.id = b.service_id
	WHERE b.id = $1`

func (q *Queries) GetBookingViewByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (BookingViewRow, error) {
	rows, err := dbtx.Query(ctx, getBookingViewByID, id)
	if err != nil {
		return BookingViewRow{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[BookingViewRow])
}

const listBookingViewsByBarberDate = `SELECT ` + bookingColumns + `, br.name AS barber_name, s.name AS service_name
	FROM bookings b
	JOIN barbers br ON br.id = b.barber_id
	JOIN services s ON s.id = b.service_id
	WHERE b.barber_id = $1 AND b.booking_date = $2
	ORDER BY b.start_minute, b.created_at`

func (q *Queries) ListBookingViewsByBarberDate(ctx context.Context, dbtx db.DBTX, barberID uuid.UUID, date pgtype.Date) ([]BookingViewRow, error) {
	rows, err := dbtx.Query(ctx, listBookingViewsByBarberDate, barberID, date)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[BookingViewRow])
}

const listActiveAppointments = `SELECT start_minute, duration_minutes
	FROM bookings
	WHERE barber_id = $1 AND booking_date = $2 AND status = 'confirmed'
	ORDER BY start_minute`

func (q *Queries) ListActiveAppointments(ctx context.Context, dbtx db.DBTX, barberID uuid.UUID, date pgtype.Date) ([]AppointmentRow, error) {
	rows, err := dbtx.Query(ctx, listActiveAppointments, barberID, date)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[AppointmentRow])
}

const createBooking = `INSERT INTO bookings (
	id, barber_id, service_id, booking_date, start_minute, duration_minutes,
	customer_name, customer_phone, note, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

func (q *Queries) CreateBooking(ctx context.Context, dbtx db.DBTX, arg CreateBookingParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBooking,
		arg.ID,
		arg.BarberID,
		arg.ServiceID,
		arg.BookingDate,
		arg.StartMinute,
		arg.DurationMinutes,
		arg.CustomerName,
		arg.CustomerPhone,
		arg.Note,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	).Scan(&id)
	return id, err
}

const updateBookingStatus = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

// UpdateBookingStatus returns the number of rows touched.
func (q *Queries) UpdateBookingStatus(ctx context.Context, dbtx db.DBTX, arg UpdateBookingStatusParams) (int64, error) {
	tag, err := dbtx.Exec(ctx, updateBookingStatus, arg.ID, arg.Status, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const createNotificationJob = `INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)`

func (q *Queries) CreateNotificationJob(ctx context.Context, dbtx db.DBTX, arg CreateNotificationJobParams) error {
	_, err := dbtx.Exec(ctx, createNotificationJob, arg.Kind, arg.Topic, arg.Payload, arg.RunAt, arg.Status)
	return err
}
