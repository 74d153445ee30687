// Package gateway implements the edge gateway: per-request authentication
// enforcement, trust-header injection, and reverse proxying to the backend
// services.
package gateway

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dad-ventas/sales-platform/internal/api/metrics"
	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

const bearerScheme = "Bearer"

// AuthFilter returns the middleware that guards every proxied route.
//
// Per request: CORS pre-flights and allow-listed public paths pass through
// untouched; anything else needs a well-formed bearer token, which is
// validated against the identity service before the request is forwarded
// with trust headers attached. Rejections carry no body: 400 for a missing
// or malformed Authorization header, 401 for any validation failure —
// including the identity service being unreachable, so callers cannot
// distinguish a bad token from internal topology trouble.
//
// The publicPrefixes slice is copied at construction; the filter holds no
// mutable state across requests.
func AuthFilter(validator ports.TokenValidator, publicPrefixes []string, log zerolog.Logger) echo.MiddlewareFunc {
	prefixes := make([]string, len(publicPrefixes))
	copy(prefixes, publicPrefixes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			// CORS pre-flight probes must never be blocked.
			if req.Method == http.MethodOptions {
				metrics.GatewayRequestsTotal.WithLabelValues("preflight").Inc()
				return next(c)
			}

			for _, p := range prefixes {
				if strings.HasPrefix(path, p) {
					metrics.GatewayRequestsTotal.WithLabelValues("public").Inc()
					return next(c)
				}
			}

			// Trailing spaces are dropped before splitting, so a stray
			// space after the token is tolerated while "Bearer " with no
			// token collapses to a single field and is rejected.
			header := req.Header.Get(echo.HeaderAuthorization)
			parts := strings.Split(strings.TrimRight(header, " "), " ")
			if header == "" || len(parts) != 2 || parts[0] != bearerScheme {
				log.Debug().Str("path", path).Msg("missing or malformed authorization header")
				metrics.GatewayRequestsTotal.WithLabelValues("rejected_bad_header").Inc()
				return c.NoContent(http.StatusBadRequest)
			}

			// The only suspension point in the pipeline. The call is bound
			// to the request context, so a client disconnect cancels it.
			start := time.Now()
			claims, err := validator.Validate(req.Context(), parts[1])
			if err != nil {
				metrics.GatewayValidationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
				metrics.GatewayRequestsTotal.WithLabelValues("rejected_unauthorized").Inc()
				log.Warn().Err(err).Str("path", path).Msg("token validation failed")
				return c.NoContent(http.StatusUnauthorized)
			}
			metrics.GatewayValidationDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

			if claims.Username != "" {
				req.Header.Set(domain.HeaderUsername, claims.Username)
			}
			if claims.Role != "" {
				req.Header.Set(domain.HeaderRole, claims.Role)
			}

			// Never overwrite an x-client-id that arrived on the request:
			// a value set by a trusted upstream hop keeps its origin.
			if len(req.Header.Values(domain.HeaderClientID)) == 0 {
				if resolved := resolveClientID(claims); resolved != nil {
					req.Header.Set(domain.HeaderClientID, strconv.FormatInt(*resolved, 10))
				}
			}

			metrics.GatewayRequestsTotal.WithLabelValues("forwarded").Inc()
			return next(c)
		}
	}
}

// resolveClientID computes the effective client identifier: the account's
// linked client id when present, else the internal user id for CLIENTE
// tokens minted before the link was provisioned, else none.
func resolveClientID(claims *domain.SessionClaims) *int64 {
	if claims.ClientID != nil {
		return claims.ClientID
	}
	if strings.EqualFold(claims.Role, domain.RoleCliente) && claims.UserID != 0 {
		id := claims.UserID
		return &id
	}
	return nil
}
