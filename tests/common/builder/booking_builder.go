//go:build unit || e2e

package builder

import (
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	reqdto "barbershop-booking/internal/handler/dto/request"
	"barbershop-booking/internal/usecase/queries"
	"barbershop-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	ShopID          uuid.UUID
	BarberID        uuid.UUID
	ServiceID       uuid.UUID
	Date            string
	Start           string
	DurationMinutes int
	CustomerName    string
	CustomerPhone   string
	Note            string
	Status          string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:              uuid.New(),
		ShopID:          uuid.New(),
		BarberID:        uuid.New(),
		ServiceID:       uuid.New(),
		Date:            "2030-06-14",
		Start:           "10:30",
		DurationMinutes: 30,
		CustomerName:    "Dario Rossi",
		CustomerPhone:   "+39 333 1234567",
		Note:            "Skin fade, keep the top long",
		Status:          booking.StatusConfirmed.String(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildRequest() (booking.Request, error) {
	date, err := booking.ParseDate(b.Date)
	if err != nil {
		return booking.Request{}, err
	}
	start, err := availability.ParseTimeOfDay(b.Start)
	if err != nil {
		return booking.Request{}, err
	}
	customer, err := booking.NewCustomer(b.CustomerName, b.CustomerPhone)
	if err != nil {
		return booking.Request{}, err
	}
	note, err := booking.NewNote(b.Note)
	if err != nil {
		return booking.Request{}, err
	}
	return booking.Request{Date: date, Start: start, Customer: customer, Note: note}, nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	note := b.Note
	return reqdto.CreateBookingRequest{
		BarberID:      b.BarberID,
		ServiceID:     b.ServiceID,
		Date:          b.Date,
		Start:         b.Start,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Note:          &note,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	now := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	note := b.Note
	var end string
	if start, err := availability.ParseTimeOfDay(b.Start); err == nil {
		end = availability.TimeOfDay(start.Minutes() + b.DurationMinutes).String()
	}
	return &queries.BookingView{
		ID:              b.ID,
		ShopID:          b.ShopID,
		BarberID:        b.BarberID,
		BarberName:      "Marco",
		ServiceID:       b.ServiceID,
		ServiceName:     "Classic cut",
		Date:            b.Date,
		Start:           b.Start,
		End:             end,
		DurationMinutes: b.DurationMinutes,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		Note:            &note,
		Status:          b.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// BuildSnapshot panics on malformed Date or Start; builders are for tests only.
func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	date, err := booking.ParseDate(b.Date)
	if err != nil {
		panic(err)
	}
	start, err := availability.ParseTimeOfDay(b.Start)
	if err != nil {
		panic(err)
	}
	note := b.Note
	now := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	return &shared.BookingSnapshot{
		ID:              b.ID,
		ShopID:          b.ShopID,
		BarberID:        b.BarberID,
		ServiceID:       b.ServiceID,
		Date:            date,
		StartMinute:     start.Minutes(),
		DurationMinutes: b.DurationMinutes,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		Note:            &note,
		Status:          b.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
