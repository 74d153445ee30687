package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PaymentGuard provides idempotency checks for sale processing backed by
// Redis. Key format: sale:order:<order_id>. Keys never expire: an order can
// only ever be paid once.
type PaymentGuard struct {
	client *redis.Client
}

// NewPaymentGuard creates a PaymentGuard wrapping the given Redis client.
func NewPaymentGuard(client *redis.Client) *PaymentGuard {
	return &PaymentGuard{client: client}
}

// IsProcessed reports whether a sale has already been recorded for this order.
func (g *PaymentGuard) IsProcessed(ctx context.Context, orderID int64) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(orderID)).Result()
	if err != nil {
		return false, fmt.Errorf("payment guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this order has been charged.
func (g *PaymentGuard) Mark(ctx context.Context, orderID int64) error {
	return g.client.Set(ctx, g.key(orderID), "1", 0).Err()
}

func (g *PaymentGuard) key(orderID int64) string {
	return fmt.Sprintf("sale:order:%d", orderID)
}
