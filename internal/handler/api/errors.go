package api

import (
	"net/http"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	reqdto "barbershop-booking/internal/handler/dto/request"
	resdto "barbershop-booking/internal/handler/dto/response"
	"barbershop-booking/internal/handler/httperr"
	"barbershop-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var useCaseErrors = []errorMapping{
	{errs.ErrBarberNotFound, http.StatusNotFound, "Barber not found"},
	{errs.ErrServiceNotFound, http.StatusNotFound, "Service not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
	{errs.ErrInvalidSlot, http.StatusBadRequest, "Requested start time is not bookable"},
	{errs.ErrSlotUnavailable, http.StatusConflict, "Slot is no longer available"},
	{errs.ErrAlreadyCanceled, http.StatusConflict, "Booking is already canceled"},
	{errs.ErrInvalidConfiguration, http.StatusUnprocessableEntity, "Barber schedule is misconfigured"},
}

// abortWithUseCaseError maps use case sentinels to status codes. Anything
// unrecognized is a 500.
func abortWithUseCaseError(c *gin.Context, err error) {
	for _, m := range useCaseErrors {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, slotRejectionDetail(err))
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func slotRejectionDetail(err error) any {
	var taken *booking.SlotTakenError
	if errs.As(err, &taken) {
		return gin.H{"reason": "slot_taken", "conflicts": resdto.FromConflicts(taken.Conflicts)}
	}

	var reason string
	switch {
	case errs.Is(err, booking.ErrOffGrid):
		reason = "off_grid"
	case errs.Is(err, booking.ErrPastClosing):
		reason = "past_closing"
	case errs.Is(err, booking.ErrLeadTimeNotMet):
		reason = "lead_time"
	default:
		return nil
	}
	return gin.H{"reason": reason}
}

// inputRejectionDetail names what was wrong with a well-formed but invalid
// request without echoing internal error text.
func inputRejectionDetail(err error) any {
	var reason string
	switch {
	case errs.Is(err, reqdto.ErrDurationSourceConflict):
		reason = "duration_source_conflict"
	case errs.Is(err, reqdto.ErrInvalidServiceID):
		reason = "invalid_service_id"
	case errs.Is(err, booking.ErrInvalidDate):
		reason = "invalid_date"
	case errs.Is(err, availability.ErrInvalidTimeOfDay):
		reason = "invalid_time"
	default:
		reason = "invalid_input"
	}
	return gin.H{"reason": reason}
}
