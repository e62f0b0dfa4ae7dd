package components

import (
	"librepress/internal/infra/db"
	"librepress/internal/infra/readstore"
	"librepress/internal/infra/repository"
	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Work views double as pricing snapshots
		fx.Annotate(
			readstore.NewWorkReadStore,
			fx.As(new(queries.WorkReadStore)),
			fx.As(new(queries.WorkSnapshotStore)),
		),
		fx.Annotate(
			readstore.NewStockReadStore,
			fx.As(new(queries.StockReadStore)),
		),
		fx.Annotate(
			readstore.NewDiscountReadStore,
			fx.As(new(queries.DiscountReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			repository.NewWorkRepository,
			fx.As(new(commands.WorkRepository)),
		),
		fx.Annotate(
			repository.NewHoldingRepository,
			fx.As(new(commands.HoldingRepository)),
		),
		fx.Annotate(
			repository.NewMovementRepository,
			fx.As(new(commands.MovementRepository)),
		),
		fx.Annotate(
			repository.NewDiscountRuleRepository,
			fx.As(new(commands.DiscountRuleRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
