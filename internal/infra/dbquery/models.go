package dbquery

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Barber struct {
	ID                    uuid.UUID          `db:"id"`
	ShopID                uuid.UUID          `db:"shop_id"`
	Name                  string             `db:"name"`
	WorkStartMinute       int32              `db:"work_start_minute"`
	WorkEndMinute         int32              `db:"work_end_minute"`
	SlotIntervalMinutes   int32              `db:"slot_interval_minutes"`
	LeadTimeMin           int32              `db:"lead_time_min"`
	RequireFitBeforeClose bool               `db:"require_fit_before_close"`
	CreatedAt             pgtype.Timestamptz `db:"created_at"`
	UpdatedAt             pgtype.Timestamptz `db:"updated_at"`
}

type Service struct {
	ID            uuid.UUID          `db:"id"`
	ShopID        uuid.UUID          `db:"shop_id"`
	Name          string             `db:"name"`
	DurationLabel string             `db:"duration_label"`
	PriceCents    int32              `db:"price_cents"`
	CreatedAt     pgtype.Timestamptz `db:"created_at"`
	UpdatedAt     pgtype.Timestamptz `db:"updated_at"`
}

type Booking struct {
	ID              uuid.UUID          `db:"id"`
	ShopID          uuid.UUID          `db:"shop_id"`
	BarberID        uuid.UUID          `db:"barber_id"`
	ServiceID       uuid.UUID          `db:"service_id"`
	BookingDate     pgtype.Date        `db:"booking_date"`
	StartMinute     int32              `db:"start_minute"`
	DurationMinutes int32              `db:"duration_minutes"`
	CustomerName    string             `db:"customer_name"`
	CustomerPhone   string             `db:"customer_phone"`
	Note            pgtype.Text        `db:"note"`
	Status          string             `db:"status"`
	CreatedAt       pgtype.Timestamptz `db:"created_at"`
	UpdatedAt       pgtype.Timestamptz `db:"updated_at"`
}

type BookingViewRow struct {
	Booking
	BarberName  string `db:"barber_name"`
	ServiceName string `db:"service_name"`
}

type AppointmentRow struct {
	StartMinute     int32 `db:"start_minute"`
	DurationMinutes int32 `db:"duration_minutes"`
}

type CreateBookingParams struct {
	ID              uuid.UUID
	BarberID        uuid.UUID
	ServiceID       uuid.UUID
	BookingDate     pgtype.Date
	StartMinute     int32
	DurationMinutes int32
	CustomerName    string
	CustomerPhone   string
	Note            pgtype.Text
	Status          string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type UpdateBookingStatusParams struct {
	ID        uuid.UUID
	Status    string
	UpdatedAt pgtype.Timestamptz
}

type CreateNotificationJobParams struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   pgtype.Timestamptz
	Status  string
}
