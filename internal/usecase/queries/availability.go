package queries

import (
	"context"
	"log/slog"
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/barber"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/pkg/clock"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityParams struct {
	BarberID uuid.UUID
	Date     time.Time
	// Exactly one of ServiceID and DurationLabel is normally set. With neither,
	// the default service duration applies.
	ServiceID     *uuid.UUID
	DurationLabel *string
}

type AvailabilityView struct {
	BarberID         uuid.UUID  `json:"barber_id"`
	Date             string     `json:"date"`
	ServiceID        *uuid.UUID `json:"service_id,omitempty"`
	DurationMinutes  int        `json:"duration_minutes"`
	DurationFallback bool       `json:"duration_fallback"`
	IntervalMinutes  int        `json:"interval_minutes"`
	Slots            []string   `json:"slots"`
}

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error)
}

type AppointmentReadStore interface {
	ListActiveAppointments(ctx context.Context, barberID uuid.UUID, date time.Time) ([]availability.Appointment, error)
}

type AvailabilityQueries interface {
	ListAvailableSlots(ctx context.Context, params AvailabilityParams) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	barbers      BarberReadStore
	services     ServiceReadStore
	appointments AppointmentReadStore
	clock        clock.Clock
	location     *time.Location
}

func NewAvailabilityQueries(
	barbers BarberReadStore,
	services ServiceReadStore,
	appointments AppointmentReadStore,
	clk clock.Clock,
	location *time.Location,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		barbers:      barbers,
		services:     services,
		appointments: appointments,
		clock:        clk,
		location:     location,
	}
}

func (q *availabilityQueriesImpl) ListAvailableSlots(ctx context.Context, params AvailabilityParams) (*AvailabilityView, error) {
	snap, err := findBarberInShop(ctx, q.barbers, uuid.Nil, params.BarberID)
	if err != nil {
		return nil, err
	}
	barberEntity, err := snap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidConfiguration)
	}

	duration, fellBack, err := q.resolveDuration(ctx, barberEntity, params)
	if err != nil {
		return nil, err
	}

	candidates, err := barberEntity.BookableSlots(duration)
	if err != nil {
		slog.ErrorContext(ctx, "barber working window is misconfigured",
			"barber_id", barberEntity.ID().String(),
			"error", err.Error())
		return nil, errs.Mark(err, errs.ErrInvalidConfiguration)
	}

	existing, err := q.appointments.ListActiveAppointments(ctx, barberEntity.ID(), params.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	free := availability.FilterAvailable(candidates, duration, existing)
	free = q.applyLeadTime(barberEntity, params.Date, free)

	slots := make([]string, len(free))
	for i, slot := range free {
		slots[i] = slot.String()
	}

	return &AvailabilityView{
		BarberID:         barberEntity.ID(),
		Date:             params.Date.Format(booking.DateLayout),
		ServiceID:        params.ServiceID,
		DurationMinutes:  duration,
		DurationFallback: fellBack,
		IntervalMinutes:  barberEntity.Window().IntervalMinutes,
		Slots:            slots,
	}, nil
}

func (q *availabilityQueriesImpl) resolveDuration(ctx context.Context, b *barber.Barber, params AvailabilityParams) (int, bool, error) {
	var label, source string
	switch {
	case params.ServiceID != nil:
		svc, err := q.services.FindByID(ctx, *params.ServiceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return 0, false, errs.ErrServiceNotFound
			}
			return 0, false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if svc.ShopID != b.ShopID() {
			return 0, false, errs.ErrServiceNotFound
		}
		label, source = svc.DurationLabel, "service:"+svc.ID.String()
	case params.DurationLabel != nil:
		label, source = *params.DurationLabel, "query"
	default:
		source = "none"
	}

	minutes, fellBack := availability.DurationFromLabel(label)
	if fellBack {
		slog.WarnContext(ctx, "service duration label unparsable, using default",
			"label", label,
			"source", source,
			"default_minutes", minutes)
	}
	return minutes, fellBack, nil
}

// applyLeadTime drops slots starting before the barber's earliest bookable
// instant. Past days come back empty.
func (q *availabilityQueriesImpl) applyLeadTime(b *barber.Barber, date time.Time, slots []availability.TimeOfDay) []availability.TimeOfDay {
	day := booking.StartsAt(date, 0, q.location)
	earliest := b.EarliestBookable(q.clock.Now())

	if !earliest.After(day) {
		return slots
	}
	if !earliest.Before(day.AddDate(0, 0, 1)) {
		return []availability.TimeOfDay{}
	}

	offset := earliest.Sub(day)
	cutoff := int(offset / time.Minute)
	if offset%time.Minute != 0 {
		cutoff++
	}
	return availability.DropBefore(slots, availability.TimeOfDay(cutoff))
}
