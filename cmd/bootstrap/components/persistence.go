package components

import (
	"barbershop-booking/internal/infra/db"
	"barbershop-booking/internal/infra/dbquery"
	"barbershop-booking/internal/infra/readstore"
	"barbershop-booking/internal/infra/uow"
	"barbershop-booking/internal/usecase/queries"
	"barbershop-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	dbquery.New,
	NewDBTX,
	NewTxBeginner,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			asReadQueries,
			fx.As(new(readstore.BarberReadQueries)),
			fx.As(new(readstore.ServiceReadQueries)),
			fx.As(new(readstore.BookingReadQueries)),
		),
		fx.Annotate(
			readstore.NewBarberReadStore,
			fx.As(new(queries.BarberReadStore)),
		),
		fx.Annotate(
			readstore.NewServiceReadStore,
			fx.As(new(queries.ServiceReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(queries.AppointmentReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func asReadQueries(q *dbquery.Queries) *dbquery.Queries {
	return q
}

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}
