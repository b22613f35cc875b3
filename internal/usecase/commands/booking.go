package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/pkg/clock"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	notificationKindSMS   = "sms"
	TopicBookingConfirmed = "booking_confirmed"
	TopicBookingCanceled  = "booking_canceled"
	payloadKeyBookingID   = "booking_id"
)

type CreateBookingParams struct {
	BarberID      uuid.UUID
	ServiceID     uuid.UUID
	Date          time.Time
	Start         availability.TimeOfDay
	CustomerName  string
	CustomerPhone string
	Note          string
}

type CreateBookingResult struct {
	ID               uuid.UUID
	BarberID         uuid.UUID
	ServiceID        uuid.UUID
	Date             string
	Start            string
	End              string
	DurationMinutes  int
	DurationFallback bool
	Status           string
}

type BookingCommands interface {
	Create(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	Cancel(ctx context.Context, shopID, bookingID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, factory: factory, clock: clk}
}

func (uc *bookingUseCaseImpl) Create(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	customer, err := booking.NewCustomer(params.CustomerName, params.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}
	note, err := booking.NewNote(params.Note)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInput)
	}
	req := booking.Request{
		Date:     params.Date,
		Start:    params.Start,
		Customer: customer,
		Note:     note,
	}

	var (
		created  *booking.Booking
		fellBack bool
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		barberSnap, derr := tx.Reads().LockBarber(ctx, params.BarberID)
		if derr != nil {
			return notFoundOr(derr, errs.ErrBarberNotFound)
		}
		barberEntity, derr := barberSnap.ToDomain()
		if derr != nil {
			return errs.Mark(derr, errs.ErrInvalidConfiguration)
		}

		serviceSnap, derr := tx.Reads().ServiceByID(ctx, params.ServiceID)
		if derr != nil {
			return notFoundOr(derr, errs.ErrServiceNotFound)
		}
		if serviceSnap.ShopID != barberEntity.ShopID() {
			return errs.ErrServiceNotFound
		}
		serviceEntity, derr := serviceSnap.ToDomain()
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		_, fellBack = serviceEntity.DurationMinutes()

		existing, derr := tx.Reads().ActiveAppointments(ctx, barberEntity.ID(), params.Date)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		b, derr := uc.factory.CreateBooking(barberEntity, serviceEntity, req, existing)
		if derr != nil {
			return classifyFactoryError(derr)
		}

		if _, derr = tx.Bookings().Create(ctx, tx.DB(), b); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return errs.Mark(derr, errs.ErrSlotUnavailable)
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		if derr = uc.enqueueNotification(ctx, tx, TopicBookingConfirmed, b); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fellBack {
		slog.WarnContext(ctx, "service duration label unparsable, booked with default",
			"service_id", params.ServiceID.String(),
			"booking_id", created.ID().String(),
			"default_minutes", created.DurationMinutes())
	}

	return toCreateBookingResult(created, fellBack), nil
}

func (uc *bookingUseCaseImpl) Cancel(ctx context.Context, shopID, bookingID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			return notFoundOr(derr, errs.ErrBookingNotFound)
		}
		if snap.ShopID != shopID {
			return errs.ErrBookingNotFound
		}

		b, derr := snap.ToDomain()
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		if derr = b.Cancel(uc.clock.Now()); derr != nil {
			return errs.Mark(derr, errs.ErrAlreadyCanceled)
		}

		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), b); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		if derr = uc.enqueueNotification(ctx, tx, TopicBookingCanceled, b); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// enqueueNotification writes an outbox row in the caller's transaction.
func (uc *bookingUseCaseImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking) error {
	payload, err := json.Marshal(map[string]any{
		payloadKeyBookingID: b.ID(),
		"barber_id":         b.BarberID(),
		"date":              b.Date().Format(booking.DateLayout),
		"start":             b.Start().String(),
		"customer_phone":    b.Customer().Phone(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindSMS, topic, payload, uc.clock.Now())
}

func notFoundOr(err, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func classifyFactoryError(err error) error {
	switch {
	case errs.Is(err, availability.ErrInvalidConfiguration):
		return errs.Mark(err, errs.ErrInvalidConfiguration)
	case errs.Is(err, booking.ErrSlotTaken):
		return errs.Mark(err, errs.ErrSlotUnavailable)
	case errs.Is(err, booking.ErrOffGrid),
		errs.Is(err, booking.ErrPastClosing),
		errs.Is(err, booking.ErrLeadTimeNotMet):
		return errs.Mark(err, errs.ErrInvalidSlot)
	default:
		return err
	}
}

func toCreateBookingResult(b *booking.Booking, fellBack bool) *CreateBookingResult {
	return &CreateBookingResult{
		ID:               b.ID(),
		BarberID:         b.BarberID(),
		ServiceID:        b.ServiceID(),
		Date:             b.Date().Format(booking.DateLayout),
		Start:            b.Start().String(),
		End:              availability.TimeOfDay(b.Appointment().End()).String(),
		DurationMinutes:  b.DurationMinutes(),
		DurationFallback: fellBack,
		Status:           b.Status().String(),
	}
}
