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

type ServiceReadQueries interface {
	GetServiceByID(ctx context.Context, db db.DBTX, id uuid.UUID) (dbquery.Service, error)
}

type ServiceReadStore struct {
	queries ServiceReadQueries
	db      db.DBTX
}

func NewServiceReadStore(queries ServiceReadQueries, db db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	row, err := r.queries.GetServiceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}

	return &shared.ServiceSnapshot{
		ID:            row.ID,
		ShopID:        row.ShopID,
		Name:          row.Name,
		DurationLabel: row.DurationLabel,
		PriceCents:    int(row.PriceCents),
	}, nil
}
