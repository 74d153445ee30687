package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

type stubSaleRepo struct {
	sales  map[int64]*domain.Sale
	nextID int64
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[int64]*domain.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	r.nextID++
	created := *sale
	created.ID = r.nextID
	r.sales[created.ID] = &created
	return &created, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id int64) (*domain.Sale, error) {
	if s, ok := r.sales[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSaleNotFound
}

func (r *stubSaleRepo) FindByOrderID(_ context.Context, orderID int64) (*domain.Sale, error) {
	for _, s := range r.sales {
		if s.OrderID == orderID {
			return s, nil
		}
	}
	return nil, domain.ErrSaleNotFound
}

func (r *stubSaleRepo) List(_ context.Context) ([]domain.Sale, error) {
	out := make([]domain.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) ListByClient(_ context.Context, clientID int64) ([]domain.Sale, error) {
	var out []domain.Sale
	for _, s := range r.sales {
		if s.ClientID == clientID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type stubOrderClient struct {
	orders        map[int64]*ports.Order
	statusUpdates map[int64]string
	updateErr     error
}

func newStubOrderClient(orders ...*ports.Order) *stubOrderClient {
	c := &stubOrderClient{orders: make(map[int64]*ports.Order), statusUpdates: make(map[int64]string)}
	for _, o := range orders {
		c.orders[o.ID] = o
	}
	return c
}

func (c *stubOrderClient) GetByID(_ context.Context, id int64) (*ports.Order, error) {
	if o, ok := c.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (c *stubOrderClient) UpdateStatus(_ context.Context, id int64, status string) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.statusUpdates[id] = status
	return nil
}

type stubGuard struct {
	processed map[int64]bool
	checkErr  error
}

func newStubGuard() *stubGuard {
	return &stubGuard{processed: make(map[int64]bool)}
}

func (g *stubGuard) IsProcessed(_ context.Context, orderID int64) (bool, error) {
	if g.checkErr != nil {
		return false, g.checkErr
	}
	return g.processed[orderID], nil
}

func (g *stubGuard) Mark(_ context.Context, orderID int64) error {
	g.processed[orderID] = true
	return nil
}

func TestSaleService_Process_Cash(t *testing.T) {
	repo := newStubSaleRepo()
	orders := newStubOrderClient(&ports.Order{ID: 10, ClientID: 5, Total: 120.50, Status: "PENDIENTE"})
	guard := newStubGuard()
	svc := NewSaleService(repo, orders, guard, zerolog.Nop())

	sale, err := svc.Process(context.Background(), ports.ProcessSaleInput{
		OrderID:       10,
		ClientID:      5,
		PaymentMethod: "efectivo",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if sale.ID == 0 {
		t.Fatalf("expected assigned sale id")
	}
	if sale.TotalAmount != 120.50 {
		t.Fatalf("unexpected total: %f", sale.TotalAmount)
	}
	if sale.Status != domain.SalePaid {
		t.Fatalf("unexpected status: %s", sale.Status)
	}
	if sale.PaymentMethod != domain.PaymentCash {
		t.Fatalf("payment method must be normalised, got %s", sale.PaymentMethod)
	}
	if orders.statusUpdates[10] != "PAGADO" {
		t.Fatalf("order must be marked PAGADO, got %q", orders.statusUpdates[10])
	}
	if time.Since(sale.SaleDate) > time.Minute {
		t.Fatalf("unexpected sale date: %v", sale.SaleDate)
	}
}

func TestSaleService_Process_CardRequiresDetails(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo(), newStubOrderClient(&ports.Order{ID: 10}), newStubGuard(), zerolog.Nop())

	cases := []*domain.Card{
		nil,
		{Number: "4111111111111111"},
		{Number: "4111111111111111", CVV: "123"},
	}
	for _, card := range cases {
		_, err := svc.Process(context.Background(), ports.ProcessSaleInput{
			OrderID:       10,
			ClientID:      5,
			PaymentMethod: "TARJETA",
			Card:          card,
		})
		if !errors.Is(err, domain.ErrCardRequired) {
			t.Fatalf("card %+v: expected ErrCardRequired, got %v", card, err)
		}
	}
}

func TestSaleService_Process_CardComplete(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo(), newStubOrderClient(&ports.Order{ID: 10, Total: 50}), newStubGuard(), zerolog.Nop())

	sale, err := svc.Process(context.Background(), ports.ProcessSaleInput{
		OrderID:       10,
		ClientID:      5,
		PaymentMethod: "TARJETA",
		Card:          &domain.Card{Number: "4111111111111111", CVV: "123", Expiry: "12/27"},
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if sale.PaymentMethod != domain.PaymentCard {
		t.Fatalf("unexpected payment method: %s", sale.PaymentMethod)
	}
}

func TestSaleService_Process_OrderNotFound(t *testing.T) {
	svc := NewSaleService(newStubSaleRepo(), newStubOrderClient(), newStubGuard(), zerolog.Nop())

	_, err := svc.Process(context.Background(), ports.ProcessSaleInput{
		OrderID:       999,
		ClientID:      5,
		PaymentMethod: "EFECTIVO",
	})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestSaleService_Process_ReplayReturnsExistingSale(t *testing.T) {
	repo := newStubSaleRepo()
	orders := newStubOrderClient(&ports.Order{ID: 10, Total: 30})
	guard := newStubGuard()
	svc := NewSaleService(repo, orders, guard, zerolog.Nop())

	first, err := svc.Process(context.Background(), ports.ProcessSaleInput{OrderID: 10, ClientID: 5, PaymentMethod: "EFECTIVO"})
	if err != nil {
		t.Fatalf("first process: %v", err)
	}

	second, err := svc.Process(context.Background(), ports.ProcessSaleInput{OrderID: 10, ClientID: 5, PaymentMethod: "EFECTIVO"})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("replay must return the recorded sale, got %d want %d", second.ID, first.ID)
	}
	if len(repo.sales) != 1 {
		t.Fatalf("order must not be charged twice, have %d sales", len(repo.sales))
	}
}

func TestSaleService_Process_GuardFailureProcessesAnyway(t *testing.T) {
	repo := newStubSaleRepo()
	guard := newStubGuard()
	guard.checkErr = errors.New("redis down")
	svc := NewSaleService(repo, newStubOrderClient(&ports.Order{ID: 10, Total: 30}), guard, zerolog.Nop())

	if _, err := svc.Process(context.Background(), ports.ProcessSaleInput{OrderID: 10, ClientID: 5, PaymentMethod: "EFECTIVO"}); err != nil {
		t.Fatalf("guard failure must not block processing: %v", err)
	}
}

func TestSaleService_Process_OrderStatusUpdateFails(t *testing.T) {
	repo := newStubSaleRepo()
	orders := newStubOrderClient(&ports.Order{ID: 10, Total: 30})
	orders.updateErr = errors.New("order service down")
	svc := NewSaleService(repo, orders, newStubGuard(), zerolog.Nop())

	if _, err := svc.Process(context.Background(), ports.ProcessSaleInput{OrderID: 10, ClientID: 5, PaymentMethod: "EFECTIVO"}); err == nil {
		t.Fatalf("expected error when the order cannot be marked paid")
	}
	// The sale is persisted; a retry replays it instead of charging again.
	if len(repo.sales) != 1 {
		t.Fatalf("expected the sale to be persisted, have %d", len(repo.sales))
	}
}
