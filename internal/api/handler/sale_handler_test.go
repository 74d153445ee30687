package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

type stubSaleService struct {
	sales       []domain.Sale
	sale        *domain.Sale
	err         error
	lastClient  int64
	lastProcess ports.ProcessSaleInput
}

func (s *stubSaleService) List(context.Context) ([]domain.Sale, error) {
	return s.sales, s.err
}

func (s *stubSaleService) ListByClient(_ context.Context, clientID int64) ([]domain.Sale, error) {
	s.lastClient = clientID
	return s.sales, s.err
}

func (s *stubSaleService) Get(context.Context, int64) (*domain.Sale, error) {
	return s.sale, s.err
}

func (s *stubSaleService) Process(_ context.Context, in ports.ProcessSaleInput) (*domain.Sale, error) {
	s.lastProcess = in
	return s.sale, s.err
}

func newSaleContext(method, target, body string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSaleHandler_List_EmptyIsNoContent(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{})

	c, rec := newSaleContext(http.MethodGet, "/Sale", "", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestSaleHandler_List(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{sales: []domain.Sale{{ID: 1, OrderID: 10}}})

	c, rec := newSaleContext(http.MethodGet, "/Sale", "", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []domain.Sale
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected sales: %+v", got)
	}
}

func TestSaleHandler_My_ScopedByTrustHeader(t *testing.T) {
	svc := &stubSaleService{sales: []domain.Sale{{ID: 1, ClientID: 7}}}
	h := NewSaleHandler(svc)

	c, rec := newSaleContext(http.MethodGet, "/Sale/my", "", map[string]string{domain.HeaderClientID: "7"})
	if err := h.My(c); err != nil {
		t.Fatalf("my: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastClient != 7 {
		t.Fatalf("expected client scope 7, got %d", svc.lastClient)
	}
}

func TestSaleHandler_My_MissingClientHeader(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{})

	c, _ := newSaleContext(http.MethodGet, "/Sale/my", "", nil)
	err := h.My(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestSaleHandler_My_BadClientHeader(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{})

	for _, raw := range []string{"abc", "0", "-3"} {
		c, _ := newSaleContext(http.MethodGet, "/Sale/my", "", map[string]string{domain.HeaderClientID: raw})
		err := h.My(c)

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("header %q: expected 400 HTTPError, got %v", raw, err)
		}
	}
}

func TestSaleHandler_Get_InvalidID(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{})

	c, _ := newSaleContext(http.MethodGet, "/Sale/abc", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := h.Get(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestSaleHandler_Get_NotFoundPropagates(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{err: domain.ErrSaleNotFound})

	c, _ := newSaleContext(http.MethodGet, "/Sale/99", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.Get(c); !errors.Is(err, domain.ErrSaleNotFound) {
		t.Fatalf("expected ErrSaleNotFound to propagate, got %v", err)
	}
}

func TestSaleHandler_Process_Cash(t *testing.T) {
	svc := &stubSaleService{sale: &domain.Sale{ID: 1, OrderID: 10, ClientID: 7, Status: domain.SalePaid}}
	h := NewSaleHandler(svc)

	c, rec := newSaleContext(http.MethodPost, "/Sale/process/10?paymentMethod=EFECTIVO", "",
		map[string]string{domain.HeaderClientID: "7"})
	c.SetParamNames("orderId")
	c.SetParamValues("10")

	if err := h.Process(c); err != nil {
		t.Fatalf("process: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastProcess.OrderID != 10 || svc.lastProcess.ClientID != 7 {
		t.Fatalf("unexpected process input: %+v", svc.lastProcess)
	}
	if svc.lastProcess.Card != nil {
		t.Fatalf("cash payment must not carry card details")
	}
}

func TestSaleHandler_Process_CardBodyForwarded(t *testing.T) {
	svc := &stubSaleService{sale: &domain.Sale{ID: 1}}
	h := NewSaleHandler(svc)

	c, _ := newSaleContext(http.MethodPost, "/Sale/process/10?paymentMethod=TARJETA",
		`{"numero":"4111111111111111","cvv":"123","fecha":"12/27"}`,
		map[string]string{domain.HeaderClientID: "7"})
	c.SetParamNames("orderId")
	c.SetParamValues("10")

	if err := h.Process(c); err != nil {
		t.Fatalf("process: %v", err)
	}
	if svc.lastProcess.Card == nil || svc.lastProcess.Card.Number != "4111111111111111" {
		t.Fatalf("card details must be forwarded, got %+v", svc.lastProcess.Card)
	}
}

func TestSaleHandler_Process_MissingPaymentMethod(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{})

	c, _ := newSaleContext(http.MethodPost, "/Sale/process/10", "",
		map[string]string{domain.HeaderClientID: "7"})
	c.SetParamNames("orderId")
	c.SetParamValues("10")

	err := h.Process(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestSaleHandler_Process_CardRequiredPropagates(t *testing.T) {
	h := NewSaleHandler(&stubSaleService{err: domain.ErrCardRequired})

	c, _ := newSaleContext(http.MethodPost, "/Sale/process/10?paymentMethod=TARJETA", "",
		map[string]string{domain.HeaderClientID: "7"})
	c.SetParamNames("orderId")
	c.SetParamValues("10")

	if err := h.Process(c); !errors.Is(err, domain.ErrCardRequired) {
		t.Fatalf("expected ErrCardRequired to propagate, got %v", err)
	}
}
