package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
)

// clientScope extracts the x-client-id trust header injected by the
// gateway. Operations that require a client scope fast-fail with 400 when
// the header is missing or not a positive integer — the gateway only omits
// it for accounts with no resolvable client identity.
func clientScope(c echo.Context) (int64, error) {
	raw := c.Request().Header.Get(domain.HeaderClientID)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "missing client id")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid client id")
	}
	return id, nil
}
