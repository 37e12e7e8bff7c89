package ports

import (
	"context"

	"github.com/habitek/propmobile/internal/core/domain"
)

// SessionService owns the client's authentication state.
//
// Failure semantics: storage problems are logged at the source and surface
// here as neutral absence (nil user, false booleans). Only Login propagates
// the underlying error, so the UI can show it.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Logout(ctx context.Context)
	IsAuthenticated() bool
	User() *domain.User
	Role() domain.Role

	// ValidateSession confirms the stored token against the server. Any
	// failure clears the credential store exactly like Logout (fail closed).
	ValidateSession(ctx context.Context) bool
}
