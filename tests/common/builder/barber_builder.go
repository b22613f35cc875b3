//go:build unit || e2e

package builder

import (
	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/barber"
	"barbershop-booking/internal/domain/catalog"
	"barbershop-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BarberBuilder struct {
	ID                    uuid.UUID
	ShopID                uuid.UUID
	Name                  string
	Start                 availability.TimeOfDay
	End                   availability.TimeOfDay
	IntervalMinutes       int
	LeadTimeMin           int
	RequireFitBeforeClose bool
}

func NewBarberBuilder() *BarberBuilder {
	return &BarberBuilder{
		ID:              uuid.New(),
		ShopID:          uuid.New(),
		Name:            "Marco",
		Start:           availability.At(9, 0),
		End:             availability.At(18, 0),
		IntervalMinutes: 30,
		LeadTimeMin:     0,
	}
}

func (b *BarberBuilder) With(mutate func(*BarberBuilder)) *BarberBuilder {
	mutate(b)
	return b
}

func (b *BarberBuilder) WithWindow(start, end availability.TimeOfDay, interval int) *BarberBuilder {
	b.Start, b.End, b.IntervalMinutes = start, end, interval
	return b
}

func (b *BarberBuilder) Window() availability.WorkingWindow {
	return availability.WorkingWindow{Start: b.Start, End: b.End, IntervalMinutes: b.IntervalMinutes}
}

func (b *BarberBuilder) BuildDomain() (*barber.Barber, error) {
	return barber.NewBarber(b.ID, b.ShopID, b.Name, b.Window(), b.LeadTimeMin, b.RequireFitBeforeClose)
}

func (b *BarberBuilder) BuildSnapshot() *shared.BarberSnapshot {
	return &shared.BarberSnapshot{
		ID:                    b.ID,
		ShopID:                b.ShopID,
		Name:                  b.Name,
		WorkStartMinute:       b.Start.Minutes(),
		WorkEndMinute:         b.End.Minutes(),
		SlotIntervalMinutes:   b.IntervalMinutes,
		LeadTimeMin:           b.LeadTimeMin,
		RequireFitBeforeClose: b.RequireFitBeforeClose,
	}
}

type ServiceBuilder struct {
	ID            uuid.UUID
	ShopID        uuid.UUID
	Name          string
	DurationLabel string
	PriceCents    int
}

func NewServiceBuilder() *ServiceBuilder {
	return &ServiceBuilder{
		ID:            uuid.New(),
		ShopID:        uuid.New(),
		Name:          "Classic cut",
		DurationLabel: "30 min",
		PriceCents:    2500,
	}
}

func (s *ServiceBuilder) WithDuration(label string) *ServiceBuilder {
	s.DurationLabel = label
	return s
}

func (s *ServiceBuilder) BuildDomain() (*catalog.Service, error) {
	return catalog.NewService(s.ID, s.ShopID, s.Name, s.DurationLabel, s.PriceCents)
}

func (s *ServiceBuilder) WithShop(shopID uuid.UUID) *ServiceBuilder {
	s.ShopID = shopID
	return s
}

func (s *ServiceBuilder) BuildSnapshot() *shared.ServiceSnapshot {
	return &shared.ServiceSnapshot{
		ID:            s.ID,
		ShopID:        s.ShopID,
		Name:          s.Name,
		DurationLabel: s.DurationLabel,
		PriceCents:    s.PriceCents,
	}
}
