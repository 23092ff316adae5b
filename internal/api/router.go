package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/mpdash/internal/middleware"
)

// RequestTimeout bounds each API request. It sits above the upstream client
// timeout so a slow upstream surfaces as a 504 from the client, not a cut
// connection.
const RequestTimeout = 25 * time.Second

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, Timeout).
//   - Redirects "/" to the orders view.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.Timeout(RequestTimeout),
	)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/api/v1/orders")
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/orders", handler.GetOrders)
		v1.GET("/sales", handler.GetSales)
		v1.GET("/incomes", handler.GetIncomes)
		v1.GET("/stocks", handler.GetStocks)
		v1.GET("/overview", handler.GetOverview)
		v1.POST("/sync", handler.PostSync)
		v1.GET("/sync/log", handler.GetSyncLog)
	}

	return router
}
