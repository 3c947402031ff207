package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// UserService defines the account administration surface. Registration and
// login stay on AuthService; this service covers everything after sign-up.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateRole is the only mutation path for a user's role.
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// UsernameAvailable and EmailAvailable back the pre-registration
	// availability checks; taken means false, never an error.
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
}
