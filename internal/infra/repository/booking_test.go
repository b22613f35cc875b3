//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/domain/booking"
	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/infra/dbquery"
	"barbershop-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingWriteQueries struct {
	mock.Mock
}

func (m *MockBookingWriteQueries) CreateBooking(ctx context.Context, db db.DBTX, arg dbquery.CreateBookingParams) (uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockBookingWriteQueries) UpdateBookingStatus(ctx context.Context, db db.DBTX, arg dbquery.UpdateBookingStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func newTestBooking(t *testing.T, note string) *booking.Booking {
	t.Helper()
	customer, err := booking.NewCustomer("Dario Rossi", "+39 333 1234567")
	require.NoError(t, err)
	n, err := booking.NewNote(note)
	require.NoError(t, err)
	created := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	return booking.ReconstructBooking(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC),
		availability.At(10, 30), 45,
		customer, n,
		booking.StatusConfirmed,
		created, created,
	)
}

func TestBookingRepository_Create(t *testing.T) {
	tests := []struct {
		name     string
		note     string
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success with note", note: "keep the top long"},
		{name: "success without note"},
		{name: "unique violation is a conflict", mockErr: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindConflict},
		{name: "missing barber is a foreign key violation", mockErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "other failure", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking(t, tt.note)
			mockQueries := new(MockBookingWriteQueries)

			var captured dbquery.CreateBookingParams
			retID := b.ID()
			if tt.mockErr != nil {
				retID = uuid.Nil
			}
			mockQueries.On("CreateBooking", mock.Anything, mock.Anything, mock.AnythingOfType("dbquery.CreateBookingParams")).
				Run(func(args mock.Arguments) { captured = args.Get(2).(dbquery.CreateBookingParams) }).
				Return(retID, tt.mockErr)

			repo := NewBookingRepository(mockQueries)
			id, err := repo.Create(context.Background(), nil, b)

			if tt.wantKind != "" {
				assert.Equal(t, uuid.Nil, id)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, b.ID(), id)
			assert.Equal(t, int32(630), captured.StartMinute)
			assert.Equal(t, int32(45), captured.DurationMinutes)
			assert.Equal(t, "confirmed", captured.Status)
			assert.Equal(t, tt.note != "", captured.Note.Valid)
			assert.True(t, pgconv.DateFromPgtype(captured.BookingDate).Equal(b.Date()))
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "no row updated", affected: 0, wantKind: infra.KindNotFound},
		{name: "failure", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBooking(t, "")
			require.NoError(t, b.Cancel(time.Date(2030, 6, 2, 9, 0, 0, 0, time.UTC)))

			mockQueries := new(MockBookingWriteQueries)
			mockQueries.On("UpdateBookingStatus", mock.Anything, mock.Anything, dbquery.UpdateBookingStatusParams{
				ID:        b.ID(),
				Status:    "canceled",
				UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
			}).Return(tt.affected, tt.mockErr)

			err := NewBookingRepository(mockQueries).UpdateStatus(context.Background(), nil, b)
			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}
