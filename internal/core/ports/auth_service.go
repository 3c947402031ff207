package ports

import (
	"context"

	"github.com/plasturgie/learning-platform/internal/core/domain"
)

// LoginResult carries everything the login endpoint returns alongside the
// signed bearer token.
type LoginResult struct {
	AccessToken string
	TokenType   string // always "Bearer"
	User        *domain.User
}

// AuthService implements registration and login against stored credentials.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	// Login never reveals whether the username existed: unknown usernames and
	// wrong passwords both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
