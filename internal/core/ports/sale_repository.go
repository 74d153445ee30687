package ports

import (
	"context"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
)

// SaleRepository defines the interface for sale persistence.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	FindByID(ctx context.Context, id int64) (*domain.Sale, error)
	FindByOrderID(ctx context.Context, orderID int64) (*domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Sale, error)
}
