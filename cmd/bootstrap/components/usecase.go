package components

import (
	"librepress/internal/pkg/clock"
	"librepress/internal/pkg/config"
	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCatalogUseCase,
		NewStockCommands,
		commands.NewDiscountUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		NewStockQueries,
		queries.NewDiscountQueries,
		queries.NewPricingQueries,
	),
)

func NewStockCommands(
	workRepo commands.WorkRepository,
	holdingRepo commands.HoldingRepository,
	movementRepo commands.MovementRepository,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.Config,
) commands.StockCommands {
	return commands.NewStockUseCase(
		workRepo, holdingRepo, movementRepo, pool, clk,
		cfg.Stock.DefaultMinThreshold, cfg.Stock.DefaultMaxThreshold,
	)
}

func NewStockQueries(store queries.StockReadStore, cfg config.Config) queries.StockQueries {
	return queries.NewStockQueries(store, cfg.Stock.DefaultMinThreshold, cfg.Stock.DefaultMaxThreshold)
}
