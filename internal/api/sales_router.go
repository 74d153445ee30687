package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dad-ventas/sales-platform/internal/api/handler"
	"github.com/dad-ventas/sales-platform/internal/api/middleware"
	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

// NewSalesRouter builds the Echo instance for the sales service. All /Sale
// routes sit behind the gateway and rely on its trust headers; the service
// never re-validates tokens.
func NewSalesRouter(svc ports.SaleService, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sales"))

	// --- Sale routes ---
	saleHandler := handler.NewSaleHandler(svc)
	sales := e.Group("/Sale")
	sales.GET("", saleHandler.List, middleware.RBAC(domain.RoleAdmin))
	sales.GET("/my", saleHandler.My, middleware.RBAC(domain.RoleCliente))
	sales.GET("/:id", saleHandler.Get, middleware.RBAC(domain.RoleAdmin, domain.RoleCliente))
	sales.POST("/process/:orderId", saleHandler.Process, middleware.RBAC(domain.RoleAdmin, domain.RoleCliente))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
