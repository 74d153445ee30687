package ports

import (
	"context"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account and to
// provision its external client record.
type RegisterInput struct {
	Username string
	Password string
	Role     string
	Name     string
	Document string
	Phone    string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.SessionClaims, error)
	Validate(ctx context.Context, token string) (*domain.SessionClaims, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

// TokenValidator is the gateway's view of the identity service: a single
// point-in-time token check. Implemented over HTTP in production and by
// stubs in tests.
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*domain.SessionClaims, error)
}

// LinkRequest is a queued request to provision an external client record
// for a freshly registered account and attach its id to the account.
type LinkRequest struct {
	Username string
	Name     string
	Document string
	Email    string
	Phone    string
}

// AccountLinker performs the second phase of registration: provision the
// external client record and persist the link on the account.
type AccountLinker interface {
	Link(ctx context.Context, req LinkRequest) error
}

// ClientProvisioner creates a client record in the downstream client
// service and returns its id.
type ClientProvisioner interface {
	Provision(ctx context.Context, in ProvisionInput) (int64, error)
}

// ProvisionInput mirrors the client service's creation payload. Email is
// the account username, following the platform convention.
type ProvisionInput struct {
	Name     string
	Document string
	Email    string
	Phone    string
}
