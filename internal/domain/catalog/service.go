package catalog

import (
	"errors"
	"strings"

	"barbershop-booking/internal/domain/availability"

	"github.com/google/uuid"
)

var (
	ErrEmptyServiceName = errors.New("service name cannot be empty")
	ErrNegativePrice    = errors.New("price cannot be negative")
)

// Service is a bookable offering from the shop's menu, e.g. "Skin fade, 45 min".
type Service struct {
	id            uuid.UUID
	shopID        uuid.UUID
	name          string
	durationLabel string
	priceCents    int
}

func NewService(id, shopID uuid.UUID, name, durationLabel string, priceCents int) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyServiceName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Service{
		id:            id,
		shopID:        shopID,
		name:          name,
		durationLabel: durationLabel,
		priceCents:    priceCents,
	}, nil
}

// DurationMinutes parses the free-text label leniently. fellBack is true when
// the label was unusable and the default duration was applied.
func (s *Service) DurationMinutes() (minutes int, fellBack bool) {
	return availability.DurationFromLabel(s.durationLabel)
}

func (s *Service) ID() uuid.UUID         { return s.id }
func (s *Service) ShopID() uuid.UUID     { return s.shopID }
func (s *Service) Name() string          { return s.name }
func (s *Service) DurationLabel() string { return s.durationLabel }
func (s *Service) PriceCents() int       { return s.priceCents }
