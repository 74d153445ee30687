package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dad-ventas/sales-platform/internal/api/handler"
	"github.com/dad-ventas/sales-platform/internal/api/middleware"
	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

// NewIdentityRouter builds the Echo instance for the identity service.
// Login, validate, and register are open endpoints; the account listing is
// gated on the ADMIN trust header injected by the gateway.
func NewIdentityRouter(svc ports.AuthService, db *mongo.Database, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/validate", authHandler.Validate)
	e.GET("/auth/users", authHandler.Users, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(db, nil).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
