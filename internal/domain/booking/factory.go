package booking

import (
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/barber"
	"barbershop-booking/internal/domain/catalog"
	"barbershop-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock    clock.Clock
	Location *time.Location
}

func NewFactory(clock clock.Clock, location *time.Location) *Factory {
	return &Factory{
		Clock:    clock,
		Location: location,
	}
}

type Request struct {
	Date     time.Time
	Start    availability.TimeOfDay
	Customer Customer
	Note     Note
}

// CreateBooking validates a proposed booking against the barber's schedule and
// the day's appointment snapshot. The snapshot must be read in the same
// transaction the booking is written in.
func (f *Factory) CreateBooking(
	barberEntity *barber.Barber,
	service *catalog.Service,
	req Request,
	existing []availability.Appointment,
) (*Booking, error) {
	window := barberEntity.Window()
	if err := window.Validate(); err != nil {
		return nil, err
	}

	if !window.IsOnGrid(req.Start) {
		return nil, ErrOffGrid
	}

	duration, _ := service.DurationMinutes()
	if barberEntity.RequireFitBeforeClose() && !availability.FitsWithin(req.Start, duration, window) {
		return nil, ErrPastClosing
	}

	startsAt := StartsAt(req.Date, req.Start, f.Location)
	if startsAt.Before(barberEntity.EarliestBookable(f.Clock.Now())) {
		return nil, ErrLeadTimeNotMet
	}

	if conflicts := availability.Conflicts(req.Start, duration, existing); len(conflicts) > 0 {
		return nil, &SlotTakenError{Conflicts: conflicts}
	}

	now := f.Clock.Now()
	return &Booking{
		id:              uuid.New(),
		barberID:        barberEntity.ID(),
		serviceID:       service.ID(),
		date:            req.Date,
		start:           req.Start,
		durationMinutes: duration,
		customer:        req.Customer,
		note:            req.Note,
		status:          StatusConfirmed,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}
