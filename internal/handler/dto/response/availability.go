package response

import (
	"barbershop-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AvailabilityResponse struct {
	BarberID         uuid.UUID  `json:"barberId"`
	Date             string     `json:"date"`
	ServiceID        *uuid.UUID `json:"serviceId,omitempty"`
	DurationMinutes  int        `json:"durationMinutes"`
	DurationFallback bool       `json:"durationFallback"`
	IntervalMinutes  int        `json:"intervalMinutes"`
	Slots            []string   `json:"slots" example:"09:00,09:30"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	if resp.Slots == nil {
		resp.Slots = []string{}
	}
	return &resp, nil
}
