// Package provisioning is the HTTP client for the client service, used by
// the identity service to create the external client record that backs a
// newly registered account.
package provisioning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dad-ventas/sales-platform/internal/core/ports"

	"github.com/dad-ventas/sales-platform/internal/clients/httplog"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.ClientProvisioner = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: httplog.NewRoundTripper(log, "client-service"),
		},
	}
}

type createClientRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"telefono"`
}

type createClientResponse struct {
	ID int64 `json:"id"`
}

// Provision creates a client record and returns its id.
func (c *Client) Provision(ctx context.Context, in ports.ProvisionInput) (int64, error) {
	body, err := json.Marshal(createClientRequest{
		Name:     in.Name,
		Document: in.Document,
		Email:    in.Email,
		Phone:    in.Phone,
	})
	if err != nil {
		return 0, fmt.Errorf("encode client payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Client", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("client request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("create client: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return 0, fmt.Errorf("create client: unexpected status %d", res.StatusCode)
	}

	var out createClientResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode client response: %w", err)
	}
	return out.ID, nil
}
