package shared

import (
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/barber"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/domain/catalog"

	"github.com/google/uuid"
)

// Snapshots are the row shapes read stores hand to use cases. Conversion into
// domain entities happens here so both read and write paths apply the same rules.

type BarberSnapshot struct {
	ID                    uuid.UUID
	ShopID                uuid.UUID
	Name                  string
	WorkStartMinute       int
	WorkEndMinute         int
	SlotIntervalMinutes   int
	LeadTimeMin           int
	RequireFitBeforeClose bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (s *BarberSnapshot) Window() availability.WorkingWindow {
	return availability.WorkingWindow{
		Start:           availability.TimeOfDay(s.WorkStartMinute),
		End:             availability.TimeOfDay(s.WorkEndMinute),
		IntervalMinutes: s.SlotIntervalMinutes,
	}
}

func (s *BarberSnapshot) ToDomain() (*barber.Barber, error) {
	return barber.NewBarber(s.ID, s.ShopID, s.Name, s.Window(), s.LeadTimeMin, s.RequireFitBeforeClose)
}

type ServiceSnapshot struct {
	ID            uuid.UUID
	ShopID        uuid.UUID
	Name          string
	DurationLabel string
	PriceCents    int
}

func (s *ServiceSnapshot) ToDomain() (*catalog.Service, error) {
	return catalog.NewService(s.ID, s.ShopID, s.Name, s.DurationLabel, s.PriceCents)
}

type BookingSnapshot struct {
	ID              uuid.UUID
	ShopID          uuid.UUID
	BarberID        uuid.UUID
	ServiceID       uuid.UUID
	Date            time.Time
	StartMinute     int
	DurationMinutes int
	CustomerName    string
	CustomerPhone   string
	Note            *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *BookingSnapshot) ToDomain() (*booking.Booking, error) {
	customer, err := booking.NewCustomer(s.CustomerName, s.CustomerPhone)
	if err != nil {
		return nil, err
	}
	var noteValue string
	if s.Note != nil {
		noteValue = *s.Note
	}
	note, err := booking.NewNote(noteValue)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		s.ID, s.BarberID, s.ServiceID,
		s.Date,
		availability.TimeOfDay(s.StartMinute),
		s.DurationMinutes,
		customer,
		note,
		booking.Status(s.Status),
		s.CreatedAt, s.UpdatedAt,
	), nil
}
