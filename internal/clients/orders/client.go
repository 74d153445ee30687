// Package orders is the HTTP client for the order service.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
	"github.com/dad-ventas/sales-platform/internal/core/ports"

	"github.com/dad-ventas/sales-platform/internal/clients/httplog"
)

const defaultTimeout = 3 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.OrderClient = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: httplog.NewRoundTripper(log, "order-service"),
		},
	}
}

// GetByID fetches an order. A 404 from the order service maps to
// domain.ErrOrderNotFound.
func (c *Client) GetByID(ctx context.Context, id int64) (*ports.Order, error) {
	endpoint := fmt.Sprintf("%s/Order/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("order request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch order %d: %w", id, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, domain.ErrOrderNotFound
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return nil, fmt.Errorf("fetch order %d: unexpected status %d", id, res.StatusCode)
	}

	var order ports.Order
	if err := json.NewDecoder(res.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode order %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus transitions an order's status in the order service.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status string) error {
	endpoint := fmt.Sprintf("%s/Order/%d/status?status=%s", c.baseURL, id, url.QueryEscape(status))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return fmt.Errorf("order status request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return domain.ErrOrderNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("update order %d status: unexpected status %d", id, res.StatusCode)
	}
	return nil
}
