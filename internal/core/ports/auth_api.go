package ports

import (
	"context"

	"github.com/habitek/propmobile/internal/core/domain"
)

// AuthAPI is the slice of the REST backend the session service depends on.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token and the account snapshot.
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)

	// Logout invalidates the server-side session for the current token.
	Logout(ctx context.Context) error

	// Me returns the account snapshot for the current token ("who am I").
	Me(ctx context.Context) (*domain.User, error)
}
