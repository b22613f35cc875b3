package request

import (
	"strings"

	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrDurationSourceConflict = errs.New("serviceId and duration are mutually exclusive")
	ErrInvalidServiceID       = errs.New("serviceId is not a valid UUID")
)

type AvailabilityQuery struct {
	Date      string  `form:"date" binding:"required"`
	ServiceID *string `form:"serviceId"`
	// Duration is a free-text label such as "45 min", parsed leniently.
	Duration *string `form:"duration"`
}

func (q AvailabilityQuery) ToParams(barberID uuid.UUID) (queries.AvailabilityParams, error) {
	date, err := booking.ParseDate(q.Date)
	if err != nil {
		return queries.AvailabilityParams{}, errs.Mark(err, errs.ErrInvalidInput)
	}

	params := queries.AvailabilityParams{
		BarberID: barberID,
		Date:     date,
	}

	serviceID := trimmed(q.ServiceID)
	if serviceID != nil && q.Duration != nil {
		return queries.AvailabilityParams{}, errs.Mark(ErrDurationSourceConflict, errs.ErrInvalidInput)
	}
	if serviceID != nil {
		id, err := uuid.Parse(*serviceID)
		if err != nil {
			return queries.AvailabilityParams{}, errs.Mark(errs.Mark(err, ErrInvalidServiceID), errs.ErrInvalidInput)
		}
		params.ServiceID = &id
	}
	params.DurationLabel = q.Duration

	return params, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
