package request

import (
	"strings"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	BarberID      uuid.UUID `json:"barberId" binding:"required"`
	ServiceID     uuid.UUID `json:"serviceId" binding:"required"`
	Date          string    `json:"date" binding:"required" example:"2030-06-14"`
	Start         string    `json:"start" binding:"required" example:"10:30"`
	CustomerName  string    `json:"customerName" binding:"required,max=100"`
	CustomerPhone string    `json:"customerPhone" binding:"max=32"`
	Note          *string   `json:"note,omitempty" binding:"omitempty,max=500"`
}

func (r CreateBookingRequest) ToParams() (commands.CreateBookingParams, error) {
	date, err := booking.ParseDate(r.Date)
	if err != nil {
		return commands.CreateBookingParams{}, errs.Mark(err, errs.ErrInvalidInput)
	}
	start, err := availability.ParseTimeOfDay(r.Start)
	if err != nil {
		return commands.CreateBookingParams{}, errs.Mark(err, errs.ErrInvalidInput)
	}

	var note string
	if r.Note != nil {
		note = strings.TrimSpace(*r.Note)
	}

	return commands.CreateBookingParams{
		BarberID:      r.BarberID,
		ServiceID:     r.ServiceID,
		Date:          date,
		Start:         start,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Note:          note,
	}, nil
}

type ListBookingsQuery struct {
	Date string `form:"date" binding:"required"`
}
