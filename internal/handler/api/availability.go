package api

import (
	"net/http"

	reqdto "barbershop-booking/internal/handler/dto/request"
	resdto "barbershop-booking/internal/handler/dto/response"
	"barbershop-booking/internal/handler/httperr"
	"barbershop-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary List available slots
// @Description Bookable start times of a barber on a date for a service (or a free-text duration)
// @Tags availability
// @Produce json
// @Param id path string true "Barber ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param serviceId query string false "Service ID"
// @Param duration query string false "Duration label, e.g. '45 min'"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/barbers/{id}/availability [get]
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid barber ID format", nil)
		return
	}

	var query reqdto.AvailabilityQuery
	if err = c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	params, err := query.ToParams(barberID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", inputRejectionDetail(err))
		return
	}

	view, err := h.q.ListAvailableSlots(c.Request.Context(), params)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
