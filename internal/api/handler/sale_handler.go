package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dad-ventas/sales-platform/internal/api/metrics"
	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

// SaleHandler handles HTTP requests for sale operations. It trusts the
// identity headers injected by the gateway and never re-validates tokens.
type SaleHandler struct {
	service ports.SaleService
}

func NewSaleHandler(service ports.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// cardRequest carries the card details for TARJETA payments.
type cardRequest struct {
	Number string `json:"numero"`
	CVV    string `json:"cvv"`
	Expiry string `json:"fecha"`
}

// List returns every sale on the platform. Admin only; 204 when empty.
func (h *SaleHandler) List(c echo.Context) error {
	sales, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(sales) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, sales)
}

// My returns the sales belonging to the client identified by the
// x-client-id trust header.
func (h *SaleHandler) My(c echo.Context) error {
	clientID, err := clientScope(c)
	if err != nil {
		return err
	}

	sales, err := h.service.ListByClient(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	if len(sales) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, sales)
}

// Get returns a single sale by id.
func (h *SaleHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sale id")
	}

	sale, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sale)
}

// Process records a payment for an order on behalf of the scoped client.
// Card details in the body are mandatory for TARJETA payments.
func (h *SaleHandler) Process(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil || orderID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	clientID, err := clientScope(c)
	if err != nil {
		return err
	}

	paymentMethod := c.QueryParam("paymentMethod")
	if paymentMethod == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing payment method")
	}

	// Body is optional; only card payments need it.
	var card *domain.Card
	var req cardRequest
	if err := c.Bind(&req); err == nil && (req.Number != "" || req.CVV != "" || req.Expiry != "") {
		card = &domain.Card{Number: req.Number, CVV: req.CVV, Expiry: req.Expiry}
	}

	sale, err := h.service.Process(c.Request().Context(), ports.ProcessSaleInput{
		OrderID:       orderID,
		ClientID:      clientID,
		PaymentMethod: paymentMethod,
		Card:          card,
	})
	if err != nil {
		metrics.SalesErrorsTotal.WithLabelValues(processErrorReason(err)).Inc()
		return err
	}

	metrics.SalesProcessedTotal.WithLabelValues(strings.ToUpper(paymentMethod)).Inc()
	return c.JSON(http.StatusOK, sale)
}

func processErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, domain.ErrCardRequired):
		return "card_required"
	default:
		return "error"
	}
}
