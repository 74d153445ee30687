package gateway

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/dad-ventas/sales-platform/internal/api/handler"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
	"github.com/dad-ventas/sales-platform/internal/infrastructure/config"
)

// route binds a path prefix to a backend. Unauthenticated routes skip the
// auth filter; the identity service's own login and register endpoints
// must stay reachable without a token.
type route struct {
	prefix        string
	target        string
	authenticated bool
}

// NewRouter builds the gateway Echo instance: global middleware, the auth
// filter on protected route groups, and reverse proxies to the backends.
func NewRouter(cfg *config.Gateway, validator ports.TokenValidator, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", handler.NewHealthHandler().Liveness)

	filter := AuthFilter(validator, cfg.PublicPaths, log)

	routes := []route{
		{prefix: "/auth", target: cfg.IdentityURL, authenticated: false},
		{prefix: "/Sale", target: cfg.SalesURL, authenticated: true},
		{prefix: "/uploads", target: cfg.AssetsURL, authenticated: true}, // exempted by the public-path allow-list
	}

	for _, r := range routes {
		if r.target == "" {
			log.Warn().Str("prefix", r.prefix).Msg("no backend configured, route disabled")
			continue
		}
		u, err := url.Parse(r.target)
		if err != nil {
			return nil, fmt.Errorf("parse target for %s: %w", r.prefix, err)
		}

		g := e.Group(r.prefix)
		if r.authenticated {
			g.Use(filter)
		}
		g.Use(echomiddleware.Proxy(echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{{URL: u}})))
	}

	return e, nil
}
