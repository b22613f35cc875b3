//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/infra/dbquery"
	"barbershop-booking/internal/pkg/pgconv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationWriteQueries struct {
	mock.Mock
}

func (m *MockNotificationWriteQueries) CreateNotificationJob(ctx context.Context, db db.DBTX, arg dbquery.CreateNotificationJobParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func TestNotificationRepository_CreateJob(t *testing.T) {
	runAt := time.Date(2030, 6, 14, 8, 0, 0, 0, time.UTC)
	payload := []byte(`{"booking_id":"x"}`)
	want := dbquery.CreateNotificationJobParams{
		Kind:    "sms",
		Topic:   "booking_confirmed",
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  "queued",
	}

	t.Run("queues the job", func(t *testing.T) {
		mockQueries := new(MockNotificationWriteQueries)
		mockQueries.On("CreateNotificationJob", mock.Anything, mock.Anything, want).Return(nil)

		err := NewNotificationRepository(mockQueries).CreateJob(context.Background(), nil, "sms", "booking_confirmed", payload, runAt)
		assert.NoError(t, err)
		mockQueries.AssertExpectations(t)
	})

	t.Run("wraps failures", func(t *testing.T) {
		mockQueries := new(MockNotificationWriteQueries)
		mockQueries.On("CreateNotificationJob", mock.Anything, mock.Anything, want).Return(assert.AnError)

		err := NewNotificationRepository(mockQueries).CreateJob(context.Background(), nil, "sms", "booking_confirmed", payload, runAt)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
