package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/habitek/propmobile/internal/core/domain"
	"github.com/habitek/propmobile/internal/core/ports"
)

// SessionService implements ports.SessionService over a credential store and
// the auth slice of the REST API.
type SessionService struct {
	store    ports.CredentialStore
	api      ports.AuthAPI
	validate *validator.Validate
	log      zerolog.Logger
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(store ports.CredentialStore, api ports.AuthAPI, log zerolog.Logger) *SessionService {
	return &SessionService{
		store:    store,
		api:      api,
		validate: validator.New(),
		log:      log,
	}
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Login authenticates against the API and persists the resulting session.
// API errors propagate untouched so the caller can display them; there is no
// retry. A failure to persist the session also fails the login, leaving the
// store cleared.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := s.validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.persist(token, user); err != nil {
		s.clearStore()
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return user, nil
}

func (s *SessionService) persist(token string, user *domain.User) error {
	if err := s.store.SetToken(token); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.SetUserData(data)
}

// Logout tells the server best-effort, then unconditionally clears the
// stored token and user. Network failure does not keep the session alive.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("server logout failed, clearing local session anyway")
	}
	s.clearStore()
}

// IsAuthenticated reports whether a token is stored. It never validates the
// token against the server; an expired token surfaces later through the 401
// teardown path.
func (s *SessionService) IsAuthenticated() bool {
	_, ok, err := s.store.Token()
	if err != nil {
		s.log.Warn().Err(err).Msg("token read failed")
		return false
	}
	return ok
}

// User returns the cached account snapshot, or nil when absent or
// unparseable. Storage and parse failures are logged, never raised.
func (s *SessionService) User() *domain.User {
	data, ok, err := s.store.UserData()
	if err != nil {
		s.log.Warn().Err(err).Msg("user data read failed")
		return nil
	}
	if !ok {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn().Err(err).Msg("user data corrupt")
		return nil
	}
	return &u
}

// Role derives the role from the cached user; RoleNone when no user.
func (s *SessionService) Role() domain.Role {
	u := s.User()
	if u == nil {
		return domain.RoleNone
	}
	return domain.ParseRole(string(u.Role))
}

// ValidateSession confirms the stored token with a who-am-I call. Any
// failure tears the session down exactly like Logout (fail closed); success
// refreshes the cached user snapshot.
func (s *SessionService) ValidateSession(ctx context.Context) bool {
	_, ok, err := s.store.Token()
	if err != nil || !ok {
		return false
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Info().Err(err).Msg("session validation failed, clearing session")
		s.clearStore()
		return false
	}

	if data, err := json.Marshal(user); err == nil {
		if err := s.store.SetUserData(data); err != nil {
			s.log.Warn().Err(err).Msg("refresh user snapshot failed")
		}
	}
	return true
}

func (s *SessionService) clearStore() {
	if err := s.store.DeleteToken(); err != nil {
		s.log.Warn().Err(err).Msg("token delete failed")
	}
	if err := s.store.DeleteUserData(); err != nil {
		s.log.Warn().Err(err).Msg("user data delete failed")
	}
}
