package booking

import (
	"errors"
	"fmt"
	"time"

	"barbershop-booking/internal/domain/availability"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCanceled = errors.New("booking is already canceled")
	ErrOffGrid         = errors.New("start time is not a slot of the working window")
	ErrPastClosing     = errors.New("service would end after closing time")
	ErrLeadTimeNotMet  = errors.New("lead time requirement not met")
	ErrSlotTaken       = errors.New("slot overlaps an existing booking")
)

// SlotTakenError carries the confirmed appointments a rejected start collides
// with. It matches ErrSlotTaken.
type SlotTakenError struct {
	Conflicts []availability.Appointment
}

func (e *SlotTakenError) Error() string {
	return fmt.Sprintf("%s: %d conflicting", ErrSlotTaken, len(e.Conflicts))
}

func (e *SlotTakenError) Unwrap() error { return ErrSlotTaken }

type Booking struct {
	id              uuid.UUID
	barberID        uuid.UUID
	serviceID       uuid.UUID
	date            time.Time
	start           availability.TimeOfDay
	durationMinutes int
	customer        Customer
	note            Note
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

func ReconstructBooking(
	id, barberID, serviceID uuid.UUID,
	date time.Time,
	start availability.TimeOfDay,
	durationMinutes int,
	customer Customer,
	note Note,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		barberID:        barberID,
		serviceID:       serviceID,
		date:            date,
		start:           start,
		durationMinutes: durationMinutes,
		customer:        customer,
		note:            note,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	b.status = StatusCanceled
	b.updatedAt = now
	return nil
}

// Appointment projects the booking for overlap checks.
func (b *Booking) Appointment() availability.Appointment {
	return availability.Appointment{Time: b.start, DurationMinutes: b.durationMinutes}
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) BarberID() uuid.UUID           { return b.barberID }
func (b *Booking) ServiceID() uuid.UUID          { return b.serviceID }
func (b *Booking) Date() time.Time               { return b.date }
func (b *Booking) Start() availability.TimeOfDay { return b.start }
func (b *Booking) DurationMinutes() int          { return b.durationMinutes }
func (b *Booking) Customer() Customer            { return b.customer }
func (b *Booking) Note() Note                    { return b.note }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time          { return b.updatedAt }
