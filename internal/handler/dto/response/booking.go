package response

import (
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/usecase/commands"
	"barbershop-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	BarberID        uuid.UUID `json:"barberId"`
	BarberName      string    `json:"barberName"`
	ServiceID       uuid.UUID `json:"serviceId"`
	ServiceName     string    `json:"serviceName"`
	Date            string    `json:"date"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	Note            *string   `json:"note,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type CreateBookingResponse struct {
	ID               uuid.UUID `json:"id"`
	BarberID         uuid.UUID `json:"barberId"`
	ServiceID        uuid.UUID `json:"serviceId"`
	Date             string    `json:"date"`
	Start            string    `json:"start"`
	End              string    `json:"end"`
	DurationMinutes  int       `json:"durationMinutes"`
	DurationFallback bool      `json:"durationFallback"`
	Status           string    `json:"status"`
}

// SlotConflict is an existing booking that blocks a requested start.
type SlotConflict struct {
	Start string `json:"start" example:"10:00"`
	End   string `json:"end" example:"10:30"`
}

func FromConflicts(apps []availability.Appointment) []SlotConflict {
	out := make([]SlotConflict, 0, len(apps))
	for _, app := range apps {
		out = append(out, SlotConflict{
			Start: app.Time.String(),
			End:   availability.TimeOfDay(app.End()).String(),
		})
	}
	return out
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var resp BookingResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	resp := make([]*BookingResponse, 0, len(views))
	if err := copier.Copy(&resp, &views); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromCreateBookingResult(r *commands.CreateBookingResult) (*CreateBookingResponse, error) {
	var resp CreateBookingResponse
	if err := copier.Copy(&resp, r); err != nil {
		return nil, err
	}
	return &resp, nil
}
