package barber

import (
	"errors"
	"strings"
	"time"

	"barbershop-booking/internal/domain/availability"

	"github.com/google/uuid"
)

var (
	ErrEmptyBarberName   = errors.New("barber name cannot be empty")
	ErrNegativeLeadTime  = errors.New("lead time cannot be negative")
	ErrBarberNameTooLong = errors.New("barber name is too long (max 255 characters)")
)

const (
	MaxBarberNameLength = 255
)

type Barber struct {
	id                    uuid.UUID
	shopID                uuid.UUID
	name                  string
	window                availability.WorkingWindow
	leadTimeMin           int
	requireFitBeforeClose bool
	createdAt             time.Time
	updatedAt             time.Time
}

// NewBarber does not validate the working window: a misconfigured window is
// reported when slots are generated, not when the barber is loaded.
func NewBarber(
	id, shopID uuid.UUID,
	name string,
	window availability.WorkingWindow,
	leadTimeMin int,
	requireFitBeforeClose bool,
) (*Barber, error) {
	if err := validateBarberName(name); err != nil {
		return nil, err
	}

	if leadTimeMin < 0 {
		return nil, ErrNegativeLeadTime
	}

	return &Barber{
		id:                    id,
		shopID:                shopID,
		name:                  strings.TrimSpace(name),
		window:                window,
		leadTimeMin:           leadTimeMin,
		requireFitBeforeClose: requireFitBeforeClose,
	}, nil
}

// EarliestBookable is the first instant a new booking may start at.
func (b *Barber) EarliestBookable(now time.Time) time.Time {
	return now.Add(time.Duration(b.leadTimeMin) * time.Minute)
}

// BookableSlots is the raw candidate set for a service of the given length,
// before existing appointments are taken into account.
func (b *Barber) BookableSlots(serviceDuration int) ([]availability.TimeOfDay, error) {
	slots, err := availability.GenerateSlots(b.window)
	if err != nil {
		return nil, err
	}
	if b.requireFitBeforeClose {
		slots = availability.KeepFitting(slots, serviceDuration, b.window)
	}
	return slots, nil
}

func validateBarberName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyBarberName
	}
	if len(name) > MaxBarberNameLength {
		return ErrBarberNameTooLong
	}
	return nil
}

func (b *Barber) ID() uuid.UUID                      { return b.id }
func (b *Barber) ShopID() uuid.UUID                  { return b.shopID }
func (b *Barber) Name() string                       { return b.name }
func (b *Barber) Window() availability.WorkingWindow { return b.window }
func (b *Barber) LeadTimeMin() int                   { return b.leadTimeMin }
func (b *Barber) RequireFitBeforeClose() bool        { return b.requireFitBeforeClose }
func (b *Barber) CreatedAt() time.Time               { return b.createdAt }
func (b *Barber) UpdatedAt() time.Time               { return b.updatedAt }
