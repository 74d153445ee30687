// Package identity is the HTTP client for the identity service, used by
// the gateway to validate bearer tokens.
package identity

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

// tokenDTO is the wire shape shared by login and validate.
type tokenDTO struct {
	Token    string `json:"token"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
	ClientID *int64 `json:"clientId"`
	ID       int64  `json:"id"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.TokenValidator = (*Client)(nil)

// NewClient builds an identity client against baseURL. A non-positive
// timeout falls back to 3s.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: httplog.NewRoundTripper(log, "identity-service"),
		},
	}
}

// Validate asks the identity service to verify the token and resolve its
// current claims. Transport failures and non-2xx statuses other than the
// auth-failure family surface as domain.ErrIdentityUnavailable; the caller
// treats every failure the same way.
func (c *Client) Validate(ctx context.Context, token string) (*domain.SessionClaims, error) {
	endpoint := fmt.Sprintf("%s/auth/validate?token=%s", c.baseURL, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
	case res.StatusCode == http.StatusUnauthorized, res.StatusCode == http.StatusNotFound:
		return nil, domain.ErrInvalidToken
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrIdentityUnavailable, res.StatusCode)
	}

	var dto tokenDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrIdentityUnavailable, err)
	}

	return &domain.SessionClaims{
		Token:    dto.Token,
		Username: dto.UserName,
		Role:     dto.Role,
		ClientID: dto.ClientID,
		UserID:   dto.ID,
	}, nil
}
