//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/handler/api"
	resdto "barbershop-booking/internal/handler/dto/response"
	"barbershop-booking/internal/handler/middleware"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/usecase"
	"barbershop-booking/internal/usecase/commands"
	"barbershop-booking/internal/usecase/queries"
	"barbershop-booking/tests/common/builder"
	"barbershop-booking/tests/common/httptest"
	"barbershop-booking/tests/common/testutil"
	commandsmock "barbershop-booking/tests/mock/commands"
	queriesmock "barbershop-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	shopID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.shopID = uuid.New()

	// Mock staff authentication for testing
	staffMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		middleware.SetStaff(c, &usecase.StaffIdentity{UserID: uuid.New(), ShopID: s.shopID, Role: "owner"})
		c.Next()
	}

	s.router.POST("/bookings", s.handler.Create)
	s.router.GET("/bookings/:id", staffMiddleware, s.handler.Get)
	s.router.POST("/bookings/:id/cancel", staffMiddleware, s.handler.Cancel)
	s.router.GET("/barbers/:id/bookings", staffMiddleware, s.handler.ListByBarberDate)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
	reason     string
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	bb := builder.NewBookingBuilder()
	reqBody := bb.BuildCreateRequestDTO()
	expectedParams, err := reqBody.ToParams()
	s.Require().NoError(err)

	result := &commands.CreateBookingResult{
		ID:              bb.ID,
		BarberID:        bb.BarberID,
		ServiceID:       bb.ServiceID,
		Date:            bb.Date,
		Start:           bb.Start,
		End:             "11:00",
		DurationMinutes: 30,
		Status:          "confirmed",
	}

	bound := []testCaseBooking{
		{name: "customerName length OK (100 chars)", mutate: testutil.Field("customerName", strings.Repeat("a", 100)), expectCode: http.StatusCreated},
		{name: "customerName length invalid (101 chars)", mutate: testutil.Field("customerName", strings.Repeat("a", 101)), expectCode: http.StatusBadRequest},
		{name: "note length OK (500 chars)", mutate: testutil.Field("note", strings.Repeat("n", 500)), expectCode: http.StatusCreated},
		{name: "note length invalid (501 chars)", mutate: testutil.Field("note", strings.Repeat("n", 501)), expectCode: http.StatusBadRequest},
		{name: "customerPhone length invalid (33 chars)", mutate: testutil.Field("customerPhone", strings.Repeat("1", 33)), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBooking{
		{name: "missing field: barberId (required)", mutate: testutil.Field("barberId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: serviceId (required)", mutate: testutil.Field("serviceId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: date (required)", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start (required)", mutate: testutil.Field("start", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: customerName (required)", mutate: testutil.Field("customerName", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: note (optional)", mutate: testutil.Field("note", nil), expectCode: http.StatusCreated},
	}

	malformed := []testCaseBooking{
		{name: "date not ISO", mutate: testutil.Field("date", "14/06/2030"), expectCode: http.StatusBadRequest, reason: "invalid_date"},
		{name: "start out of range", mutate: testutil.Field("start", "25:00"), expectCode: http.StatusBadRequest, reason: "invalid_time"},
		{name: "start without minutes", mutate: testutil.Field("start", "10"), expectCode: http.StatusBadRequest, reason: "invalid_time"},
		{name: "barberId not a UUID", mutate: testutil.Field("barberId", "barber-1"), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseBooking{bound, missing, malformed}

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), expectedParams).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(bb.ID, body.ID)
		s.Equal("10:30", body.Start)
		s.Equal("11:00", body.End)
		s.False(body.DurationFallback)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/" + bb.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
					if tc.reason != "" {
						httptest.AssertRejectionReason(s.T(), rec, tc.reason)
					}
				})
			}
		}
	})

	s.Run("error: 409 Conflict lists the clashing bookings", func() {
		taken := &booking.SlotTakenError{Conflicts: []availability.Appointment{
			{Time: availability.At(10, 0), DurationMinutes: 45},
			{Time: availability.At(11, 0), DurationMinutes: 30},
		}}
		s.mockCommands.EXPECT().Create(gomock.Any(), expectedParams).
			Return(nil, errs.Mark(errs.Wrap(taken, "create booking"), errs.ErrSlotUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Slot is no longer available")
		httptest.AssertRejectionReason(s.T(), rec, "slot_taken")
		var body struct {
			Detail struct {
				Conflicts []resdto.SlotConflict `json:"conflicts"`
			} `json:"detail"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal([]resdto.SlotConflict{{Start: "10:00", End: "10:45"}, {Start: "11:00", End: "11:30"}}, body.Detail.Conflicts)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
			expectedReason string
		}{
			{
				name:           "overlapping booking",
				commandsError:  errs.Mark(booking.ErrSlotTaken, errs.ErrSlotUnavailable),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Slot is no longer available",
			},
			{
				name:           "off-grid start",
				commandsError:  errs.Mark(booking.ErrOffGrid, errs.ErrInvalidSlot),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "not bookable",
				expectedReason: "off_grid",
			},
			{
				name:           "inside lead time",
				commandsError:  errs.Mark(booking.ErrLeadTimeNotMet, errs.ErrInvalidSlot),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "not bookable",
				expectedReason: "lead_time",
			},
			{
				name:           "barber not found",
				commandsError:  errs.ErrBarberNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Barber not found",
			},
			{
				name:           "service not found",
				commandsError:  errs.ErrServiceNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Service not found",
			},
			{
				name:           "misconfigured window",
				commandsError:  errs.Mark(errors.New("interval 0"), errs.ErrInvalidConfiguration),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "misconfigured",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), expectedParams).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)

				httptest.AssertRejectionReason(s.T(), rec, tc.expectedReason)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bb := builder.NewBookingBuilder()
	url := "/bookings/" + bb.ID.String()
	view := bb.With(func(b *builder.BookingBuilder) { b.ShopID = s.shopID }).BuildView()

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.shopID, bb.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bb.ID, response.ID)
		s.Equal(view.Start, response.Start)
		s.Equal(view.End, response.End)
		s.Equal(view.CustomerName, response.CustomerName)
		s.Equal("Marco", response.BarberName)
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.shopID, bb.ID).Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.shopID, bb.ID).
			Return(nil, errs.Mark(errors.New("conn reset"), errs.ErrDatabaseOperationFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.shopID, bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "already canceled", commandsError: errs.ErrAlreadyCanceled, expectedStatus: http.StatusConflict, expectedMsg: "already canceled"},
			{name: "not found", commandsError: errs.ErrBookingNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Booking not found"},
			{name: "database failure", commandsError: errs.ErrDatabaseOperationFailed, expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), s.shopID, bookingID).Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestListByBarberDate
// ================================================================================

func (s *BookingHandlerTestSuite) TestListByBarberDate() {
	barberID := uuid.New()
	url := "/barbers/" + barberID.String() + "/bookings"
	date := time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC)

	s.Run("success: returns the day's bookings in order", func() {
		views := []*queries.BookingView{
			builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Start = "09:00" }).BuildView(),
			builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Start = "11:30" }).BuildView(),
		}
		s.mockQueries.EXPECT().ListByBarberDate(gomock.Any(), s.shopID, barberID, date).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2030-06-14", nil, "bearer-token")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal("09:00", response[0].Start)
		s.Equal("11:30", response[1].Start)
	})

	s.Run("success: empty day is an empty array", func() {
		s.mockQueries.EXPECT().ListByBarberDate(gomock.Any(), s.shopID, barberID, date).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2030-06-14", nil, "bearer-token")

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 400 Bad Request without date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
	})

	s.Run("error: 400 Bad Request for malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2030-13-01", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
		httptest.AssertRejectionReason(s.T(), rec, "invalid_date")
	})

	s.Run("error: 404 Not Found for barber of another shop", func() {
		s.mockQueries.EXPECT().ListByBarberDate(gomock.Any(), s.shopID, barberID, date).
			Return(nil, errs.ErrBarberNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?date=2030-06-14", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Barber not found")
	})
}
