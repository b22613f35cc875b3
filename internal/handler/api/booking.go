package api

import (
	"net/http"

	"barbershop-booking/internal/domain/booking"
	reqdto "barbershop-booking/internal/handler/dto/request"
	resdto "barbershop-booking/internal/handler/dto/response"
	"barbershop-booking/internal/handler/httperr"
	"barbershop-booking/internal/handler/middleware"
	"barbershop-booking/internal/usecase/commands"
	"barbershop-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book a slot. The slot is re-checked against current bookings at write time.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", inputRejectionDetail(err))
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), params)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	resp, err := resdto.FromCreateBookingResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.Header("Location", "/api/bookings/"+result.ID.String())
	c.JSON(http.StatusCreated, resp)
}

// @Summary Get booking
// @Description Booking detail for the staff dashboard
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	shopID, ok := middleware.GetShopID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), shopID, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	resp, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel booking
// @Description Cancel a confirmed booking; its slot becomes available again
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	shopID, ok := middleware.GetShopID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err = h.cmds.Cancel(c.Request.Context(), shopID, id); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List barber bookings
// @Description A barber's bookings on one day, ordered by start time
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Barber ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/barbers/{id}/bookings [get]
func (h *BookingHandler) ListByBarberDate(c *gin.Context) {
	shopID, ok := middleware.GetShopID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid barber ID format", nil)
		return
	}
	var query reqdto.ListBookingsQuery
	if err = c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	date, err := booking.ParseDate(query.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", inputRejectionDetail(err))
		return
	}

	views, err := h.q.ListByBarberDate(c.Request.Context(), shopID, barberID, date)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	resp, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
