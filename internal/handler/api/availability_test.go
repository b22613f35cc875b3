//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"barbershop-booking/internal/handler/api"
	resdto "barbershop-booking/internal/handler/dto/response"
	"barbershop-booking/internal/pkg/errs"
	"barbershop-booking/internal/usecase/queries"
	"barbershop-booking/tests/common/httptest"
	queriesmock "barbershop-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/barbers/:id/availability", s.handler.ListSlots)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestListSlots() {
	barberID := uuid.New()
	serviceID := uuid.New()
	date := time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC)
	base := "/barbers/" + barberID.String() + "/availability"

	s.Run("success: slots for a service", func() {
		params := queries.AvailabilityParams{BarberID: barberID, Date: date, ServiceID: &serviceID}
		view := &queries.AvailabilityView{
			BarberID:        barberID,
			Date:            "2030-06-14",
			ServiceID:       &serviceID,
			DurationMinutes: 45,
			IntervalMinutes: 30,
			Slots:           []string{"09:00", "10:30", "11:00"},
		}
		s.mockQueries.EXPECT().ListAvailableSlots(gomock.Any(), params).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2030-06-14&serviceId="+serviceID.String(), nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(barberID, response.BarberID)
		s.Equal(45, response.DurationMinutes)
		s.Equal([]string{"09:00", "10:30", "11:00"}, response.Slots)
		s.Require().NotNil(response.ServiceID)
		s.Equal(serviceID, *response.ServiceID)
	})

	s.Run("success: free-text duration with fallback flag", func() {
		label := "about an hour"
		params := queries.AvailabilityParams{BarberID: barberID, Date: date, DurationLabel: &label}
		view := &queries.AvailabilityView{
			BarberID:         barberID,
			Date:             "2030-06-14",
			DurationMinutes:  30,
			DurationFallback: true,
			IntervalMinutes:  30,
			Slots:            []string{"09:00"},
		}
		s.mockQueries.EXPECT().ListAvailableSlots(gomock.Any(), params).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2030-06-14&duration=about+an+hour", nil, "")

		var response resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.DurationFallback)
		s.Nil(response.ServiceID)
	})

	s.Run("success: fully booked day renders an empty array", func() {
		s.mockQueries.EXPECT().ListAvailableSlots(gomock.Any(), gomock.Any()).
			Return(&queries.AvailabilityView{BarberID: barberID, Date: "2030-06-14"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2030-06-14", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"slots":[]`)
	})

	s.Run("error: 400 Bad Request on malformed input", func() {
		testCases := []struct {
			name        string
			path        string
			expectedMsg string
			reason      string
		}{
			{name: "invalid barber id", path: "/barbers/not-a-uuid/availability?date=2030-06-14", expectedMsg: "Invalid barber ID format"},
			{name: "missing date", path: base, expectedMsg: "Invalid query parameters"},
			{name: "malformed date", path: base + "?date=June-14", expectedMsg: "Invalid query parameters", reason: "invalid_date"},
			{name: "invalid service id", path: base + "?date=2030-06-14&serviceId=abc", expectedMsg: "Invalid query parameters", reason: "invalid_service_id"},
			{name: "both service and duration", path: base + "?date=2030-06-14&serviceId=" + serviceID.String() + "&duration=45", expectedMsg: "Invalid query parameters", reason: "duration_source_conflict"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.path, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.expectedMsg)
				if tc.reason != "" {
					httptest.AssertRejectionReason(s.T(), rec, tc.reason)
				}
			})
		}
	})

	s.Run("error: 400 detail does not echo parser output", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2030-06-14&serviceId=abc", nil, "")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.NotContains(rec.Body.String(), "UUID length")
		s.NotContains(rec.Body.String(), "serviceId is not a valid UUID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "barber not found", queryError: errs.ErrBarberNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Barber not found"},
			{name: "service not found", queryError: errs.ErrServiceNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Service not found"},
			{
				name:           "misconfigured window",
				queryError:     errs.Mark(errors.New("interval must be positive"), errs.ErrInvalidConfiguration),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Barber schedule is misconfigured",
			},
			{name: "internal server error", queryError: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().ListAvailableSlots(gomock.Any(), gomock.Any()).Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2030-06-14", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
