package ports

import (
	"context"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
)

// ProcessSaleInput describes a payment to record against an order.
// ClientID comes from the x-client-id trust header, never from the body.
type ProcessSaleInput struct {
	OrderID       int64
	ClientID      int64
	PaymentMethod string
	Card          *domain.Card
}

type SaleService interface {
	List(ctx context.Context) ([]domain.Sale, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Sale, error)
	Get(ctx context.Context, id int64) (*domain.Sale, error)
	Process(ctx context.Context, in ProcessSaleInput) (*domain.Sale, error)
}

// Order is the sales service's view of an order held by the order service.
type Order struct {
	ID       int64   `json:"id"`
	ClientID int64   `json:"client_id"`
	Total    float64 `json:"total"`
	Status   string  `json:"status"`
}

// OrderClient talks to the order service.
type OrderClient interface {
	GetByID(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}
