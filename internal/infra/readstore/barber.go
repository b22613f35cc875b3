package readstore

import (
	"context"

	"barbershop-booking/internal/infra"
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/infra/dbquery"
	"barbershop-booking/internal/pkg/pgconv"
	"barbershop-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BarberReadQueries interface {
	GetBarberByID(ctx context.Context, db db.DBTX, id uuid.UUID) (dbquery.Barber, error)
	LockBarberByID(ctx context.Context, db db.DBTX, id uuid.UUID) (dbquery.Barber, error)
}

type BarberReadStore struct {
	queries BarberReadQueries
	db      db.DBTX
}

func NewBarberReadStore(queries BarberReadQueries, db db.DBTX) *BarberReadStore {
	return &BarberReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BarberReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.BarberSnapshot, error) {
	row, err := r.queries.GetBarberByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("barber not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find barber by ID", err)
	}

	return toBarberSnapshotFromRow(row), nil
}

// FindByIDForUpdate must run on a transaction; the lock is held until it ends.
func (r *BarberReadStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*shared.BarberSnapshot, error) {
	row, err := r.queries.LockBarberByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("barber not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock barber", err)
	}

	return toBarberSnapshotFromRow(row), nil
}

func toBarberSnapshotFromRow(row dbquery.Barber) *shared.BarberSnapshot {
	return &shared.BarberSnapshot{
		ID:                    row.ID,
		ShopID:                row.ShopID,
		Name:                  row.Name,
		WorkStartMinute:       int(row.WorkStartMinute),
		WorkEndMinute:         int(row.WorkEndMinute),
		SlotIntervalMinutes:   int(row.SlotIntervalMinutes),
		LeadTimeMin:           int(row.LeadTimeMin),
		RequireFitBeforeClose: row.RequireFitBeforeClose,
		CreatedAt:             pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:             pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
