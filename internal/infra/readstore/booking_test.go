//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	"barbershop-booking/internal/domain/availability"
	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/infra/dbquery"
	"barbershop-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingReadQueries struct {
	mock.Mock
}

func (m *MockBookingReadQueries) GetBookingViewByID(ctx context.Context, db db.DBTX, id uuid.UUID) (dbquery.BookingViewRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(dbquery.BookingViewRow), args.Error(1)
}

func (m *MockBookingReadQueries) GetBookingForUpdate(ctx context.Context, db db.DBTX, id uuid.UUID) (dbquery.Booking, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(dbquery.Booking), args.Error(1)
}

func (m *MockBookingReadQueries) ListBookingViewsByBarberDate(ctx context.Context, db db.DBTX, barberID uuid.UUID, date pgtype.Date) ([]dbquery.BookingViewRow, error) {
	args := m.Called(ctx, db, barberID, date)
	return args.Get(0).([]dbquery.BookingViewRow), args.Error(1)
}

func (m *MockBookingReadQueries) ListActiveAppointments(ctx context.Context, db db.DBTX, barberID uuid.UUID, date pgtype.Date) ([]dbquery.AppointmentRow, error) {
	args := m.Called(ctx, db, barberID, date)
	return args.Get(0).([]dbquery.AppointmentRow), args.Error(1)
}

var testDate = time.Date(2030, 6, 14, 0, 0, 0, 0, time.UTC)

func newBookingRow() dbquery.Booking {
	created := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	return dbquery.Booking{
		ID:              uuid.New(),
		ShopID:          uuid.New(),
		BarberID:        uuid.New(),
		ServiceID:       uuid.New(),
		BookingDate:     pgconv.DateToPgtype(testDate),
		StartMinute:     int32(availability.At(10, 30)),
		DurationMinutes: 45,
		CustomerName:    "Dario Rossi",
		CustomerPhone:   "+39 333 1234567",
		Note:            pgconv.OptionalText(""),
		Status:          "confirmed",
		CreatedAt:       pgconv.TimeToPgtype(created),
		UpdatedAt:       pgconv.TimeToPgtype(created),
	}
}

func TestBookingReadStore_FindByID(t *testing.T) {
	row := dbquery.BookingViewRow{Booking: newBookingRow(), BarberName: "Marco", ServiceName: "Skin fade"}

	tests := []struct {
		name     string
		mockRow  dbquery.BookingViewRow
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", mockRow: row},
		{name: "not found", mockErr: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockBookingReadQueries)
			mockQueries.On("GetBookingViewByID", mock.Anything, mock.Anything, row.ID).Return(tt.mockRow, tt.mockErr)

			store := NewBookingReadStore(mockQueries, nil)
			view, err := store.FindByID(context.Background(), row.ID)

			if tt.wantKind != "" {
				assert.Nil(t, view)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, row.ID, view.ID)
				assert.Equal(t, row.ShopID, view.ShopID)
				assert.Equal(t, "2030-06-14", view.Date)
				assert.Equal(t, "10:30", view.Start)
				assert.Equal(t, "11:15", view.End)
				assert.Equal(t, "Marco", view.BarberName)
				assert.Nil(t, view.Note, "empty note is stored as NULL")
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestBookingReadStore_ListActiveAppointments(t *testing.T) {
	barberID := uuid.New()
	mockQueries := new(MockBookingReadQueries)
	mockQueries.On("ListActiveAppointments", mock.Anything, mock.Anything, barberID, pgconv.DateToPgtype(testDate)).
		Return([]dbquery.AppointmentRow{
			{StartMinute: 600, DurationMinutes: 30},
			{StartMinute: 690, DurationMinutes: 45},
		}, nil)

	store := NewBookingReadStore(mockQueries, nil)
	got, err := store.ListActiveAppointments(context.Background(), barberID, testDate)

	require.NoError(t, err)
	assert.Equal(t, []availability.Appointment{
		{Time: availability.At(10, 0), DurationMinutes: 30},
		{Time: availability.At(11, 30), DurationMinutes: 45},
	}, got)
	mockQueries.AssertExpectations(t)
}

func TestBookingReadStore_FindSnapshotForUpdate(t *testing.T) {
	row := newBookingRow()
	row.Note = pgconv.OptionalText("beard trim too")

	mockQueries := new(MockBookingReadQueries)
	mockQueries.On("GetBookingForUpdate", mock.Anything, mock.Anything, row.ID).Return(row, nil)

	store := NewBookingReadStore(mockQueries, nil)
	snap, err := store.FindSnapshotForUpdate(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, row.ShopID, snap.ShopID)
	assert.Equal(t, 630, snap.StartMinute)
	assert.Equal(t, 45, snap.DurationMinutes)
	require.NotNil(t, snap.Note)
	assert.Equal(t, "beard trim too", *snap.Note)
	assert.True(t, snap.Date.Equal(testDate))

	b, err := snap.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, availability.At(10, 30), b.Start())
}
