package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"
)

// PaymentGuard abstracts the idempotency store (Redis) that prevents the
// same order from being charged twice.
type PaymentGuard interface {
	IsProcessed(ctx context.Context, orderID int64) (bool, error)
	Mark(ctx context.Context, orderID int64) error
}

type saleService struct {
	repo   ports.SaleRepository
	orders ports.OrderClient
	guard  PaymentGuard
	log    zerolog.Logger
}

// NewSaleService returns a SaleService implementation.
func NewSaleService(repo ports.SaleRepository, orders ports.OrderClient, guard PaymentGuard, log zerolog.Logger) ports.SaleService {
	return &saleService{repo: repo, orders: orders, guard: guard, log: log}
}

func (s *saleService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.List(ctx)
}

func (s *saleService) ListByClient(ctx context.Context, clientID int64) ([]domain.Sale, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *saleService) Get(ctx context.Context, id int64) (*domain.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

// Process records a payment against an order and marks the order paid in
// the order service. Replays of an already-processed order return the
// recorded sale without charging again.
func (s *saleService) Process(ctx context.Context, in ports.ProcessSaleInput) (*domain.Sale, error) {
	// 1. Idempotency check — replay returns the existing sale.
	processed, err := s.guard.IsProcessed(ctx, in.OrderID)
	if err != nil {
		s.log.Warn().Err(err).Int64("order_id", in.OrderID).Msg("payment guard check failed, processing anyway")
	} else if processed {
		existing, err := s.repo.FindByOrderID(ctx, in.OrderID)
		if err == nil {
			s.log.Info().Int64("order_id", in.OrderID).Int64("sale_id", existing.ID).Msg("idempotent replay")
			return existing, nil
		}
		s.log.Warn().Err(err).Int64("order_id", in.OrderID).Msg("guard hit without recorded sale, reprocessing")
	}

	// 2. The order must exist in the order service.
	order, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("process sale: %w", err)
	}

	// 3. Card payments require complete card details.
	if strings.EqualFold(in.PaymentMethod, domain.PaymentCard) && !in.Card.Complete() {
		return nil, domain.ErrCardRequired
	}

	sale := &domain.Sale{
		OrderID:       in.OrderID,
		ClientID:      in.ClientID,
		TotalAmount:   order.Total,
		Status:        domain.SalePaid,
		PaymentMethod: strings.ToUpper(in.PaymentMethod),
		SaleDate:      nowUTC(),
	}

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("process sale: %w", err)
	}

	// 4. Mark as processed before the downstream call so a retry after a
	// partial failure replays the sale instead of charging again.
	if err := s.guard.Mark(ctx, in.OrderID); err != nil {
		s.log.Warn().Err(err).Int64("order_id", in.OrderID).Msg("failed to set payment guard key")
	}

	if err := s.orders.UpdateStatus(ctx, in.OrderID, "PAGADO"); err != nil {
		return nil, fmt.Errorf("process sale: mark order paid: %w", err)
	}

	s.log.Info().
		Int64("order_id", in.OrderID).
		Int64("client_id", in.ClientID).
		Str("payment_method", sale.PaymentMethod).
		Float64("total", sale.TotalAmount).
		Msg("sale processed")

	return created, nil
}
