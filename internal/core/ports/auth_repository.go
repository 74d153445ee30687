package ports

import (
	"context"

	"github.com/dad-ventas/sales-platform/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
// Username uniqueness is enforced by the storage layer; Create returns
// domain.ErrUserExists when the constraint is violated.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}
