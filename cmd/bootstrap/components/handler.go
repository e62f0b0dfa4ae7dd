package components

import (
	"librepress/internal/handler"
	"librepress/internal/handler/api"
	"librepress/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWorkHandler,
		api.NewStockHandler,
		api.NewDiscountHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
