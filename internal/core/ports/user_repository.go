package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// UserRepository defines persistence for registered identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// UpdateRole changes a user's role. Admin-only at the service layer.
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
}
