//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"barbershop-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestBarber(t *testing.T, db DBLike, b *builder.BarberBuilder) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `INSERT INTO barbers
		(id, shop_id, name, work_start_minute, work_end_minute, slot_interval_minutes, lead_time_min, require_fit_before_close)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.ShopID, b.Name, b.Start.Minutes(), b.End.Minutes(), b.IntervalMinutes, b.LeadTimeMin, b.RequireFitBeforeClose)
	require.NoError(t, err)

	return b.ID
}

func CreateTestService(t *testing.T, db DBLike, s *builder.ServiceBuilder) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `INSERT INTO services (id, shop_id, name, duration_label, price_cents)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.ShopID, s.Name, s.DurationLabel, s.PriceCents)
	require.NoError(t, err)

	return s.ID
}

// CreateTestBooking inserts a booking directly, bypassing the overlap check.
func CreateTestBooking(t *testing.T, db DBLike, b *builder.BookingBuilder) uuid.UUID {
	t.Helper()

	snap := b.BuildSnapshot()
	ctx := context.Background()
	_, err := db.Exec(ctx, `INSERT INTO bookings
		(id, barber_id, service_id, booking_date, start_minute, duration_minutes, customer_name, customer_phone, note, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		snap.ID, snap.BarberID, snap.ServiceID, snap.Date, snap.StartMinute, snap.DurationMinutes,
		snap.CustomerName, snap.CustomerPhone, snap.Note, snap.Status)
	require.NoError(t, err)

	return snap.ID
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)

	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
