package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"librepress/internal/handler/api"
	"librepress/internal/handler/middleware"
	"librepress/internal/pkg/config"
	"librepress/internal/usecase/queries"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	workHandler *api.WorkHandler,
	stockHandler *api.StockHandler,
	discountHandler *api.DiscountHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, workHandler, stockHandler, discountHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	workHandler *api.WorkHandler,
	stockHandler *api.StockHandler,
	discountHandler *api.DiscountHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	operatorOnly := authMiddleware.RequireRole(queries.RoleOperator)

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		works := apiGroup.Group("/works")
		{
			addRoutes(works, []route{
				{Method: http.MethodPost, Path: "", Handler: workHandler.Submit},
				{Method: http.MethodGet, Path: "", Handler: workHandler.List},
				{Method: http.MethodGet, Path: "/review-queue", Handler: workHandler.ReviewQueue, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodGet, Path: "/:id", Handler: workHandler.Get},
				{Method: http.MethodPost, Path: "/:id/submit", Handler: workHandler.SubmitDraft},
				{Method: http.MethodPost, Path: "/:id/resubmit", Handler: workHandler.Resubmit},
				{Method: http.MethodPost, Path: "/:id/review", Handler: workHandler.Review, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/sale-status", Handler: workHandler.SetSaleStatus, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: workHandler.Delete, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}

		stock := apiGroup.Group("/stock")
		{
			addRoutes(stock, []route{
				{Method: http.MethodGet, Path: "/:workID", Handler: stockHandler.Overview},
				{Method: http.MethodGet, Path: "/:workID/movements", Handler: stockHandler.Movements},
				{Method: http.MethodPost, Path: "/:workID/restock", Handler: stockHandler.Restock, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:workID/transfer", Handler: stockHandler.Transfer, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:workID/consume", Handler: stockHandler.Consume},
				{Method: http.MethodPost, Path: "/:workID/return", Handler: stockHandler.Return, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}

		discounts := apiGroup.Group("/discounts")
		{
			addRoutes(discounts, []route{
				{Method: http.MethodPost, Path: "", Handler: discountHandler.Define, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodGet, Path: "", Handler: discountHandler.List},
				{Method: http.MethodPost, Path: "/:id/deactivate", Handler: discountHandler.Deactivate, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/promo/validate", Handler: discountHandler.ValidatePromo},
			{Method: http.MethodPost, Path: "/quotes", Handler: discountHandler.Quote},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
