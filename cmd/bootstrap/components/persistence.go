package components

import (
	"labreserve/internal/infra/db"
	"labreserve/internal/infra/readstore"
	"labreserve/internal/infra/uow"
	"labreserve/internal/usecase/commands"
	"labreserve/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewQuerier,
	),
	readstoreModule,
	uowModule,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Reservation
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(queries.ReservationIntervalReader)),
			fx.As(new(commands.ExpiredReservationReader)),
		),
		// Resource
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
			fx.As(new(queries.ResourceExistenceReader)),
		),
		// Lab
		fx.Annotate(
			readstore.NewLabReadStore,
			fx.As(new(queries.LabReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewQuerier(pool *pgxpool.Pool) db.Querier {
	return pool
}
