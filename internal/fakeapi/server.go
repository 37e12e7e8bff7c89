// Package fakeapi is an in-process stand-in for the property-management
// backend, used by integration tests and local development. It mirrors the
// real API's observable contract — bearer auth, role gating, envelope
// responses — without any of its business rules.
package fakeapi

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/habitek/propmobile/internal/core/domain"
)

const tokenTTL = 24 * time.Hour

// Account is a seeded backend user.
type Account struct {
	User         domain.User
	PasswordHash string
}

// Server hosts the stub endpoints. Construct with New, then mount
// Server.Handler() on an httptest.Server or a local listener.
type Server struct {
	echo   *echo.Echo
	secret string
	log    zerolog.Logger

	mu       sync.Mutex
	accounts map[string]*Account // by email
	revoked  map[string]struct{} // logged-out tokens
}

// New builds a Server signing tokens with secret, seeded with one account
// per role (password "<role>-pass", e.g. "manager-pass").
func New(secret string, log zerolog.Logger) *Server {
	s := &Server{
		secret:   secret,
		log:      log,
		accounts: make(map[string]*Account),
		revoked:  make(map[string]struct{}),
	}
	for _, role := range []domain.Role{domain.RoleManager, domain.RoleOwner, domain.RoleTenant} {
		s.Seed(domain.User{
			ID:        fmt.Sprintf("u-%s", role),
			Email:     fmt.Sprintf("%s@habitek.test", role),
			Name:      fmt.Sprintf("Test %s", role),
			Role:      role,
			CreatedAt: time.Now().UTC(),
		}, fmt.Sprintf("%s-pass", role))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())
	e.HTTPErrorHandler = s.errorHandler

	e.POST("/auth/login", s.handleLogin)
	e.POST("/auth/logout", s.handleLogout, s.requireAuth)
	e.GET("/me", s.handleMe, s.requireAuth)
	e.GET("/properties", s.handleProperties, s.requireAuth, s.requireRoles(domain.RoleManager, domain.RoleOwner))
	e.GET("/health", func(c echo.Context) error {
		return respondOK(c, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.echo = e
	return s
}

// Seed registers (or replaces) an account with the given plaintext password.
func (s *Server) Seed(user domain.User, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("fakeapi: seed %s: %v", user.Email, err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[user.Email] = &Account{User: user, PasswordHash: string(hash)}
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// IssueToken mints a valid token for email outside the login flow. Test
// helper for exercising client paths that need a known-good token.
func (s *Server) IssueToken(email string) (string, error) {
	s.mu.Lock()
	acct, ok := s.accounts[email]
	s.mu.Unlock()
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return s.sign(&acct.User)
}

func (s *Server) sign(u *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

// errorHandler renders every error as the envelope the client expects.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	case errors.Is(err, domain.ErrInvalidCredentials):
		code = http.StatusUnauthorized
		msg = "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		code = http.StatusNotFound
		msg = "user not found"
	default:
		s.log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	_ = respondFail(c, code, msg)
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Success: true, Data: data})
}

func respondFail(c echo.Context, code int, msg string) error {
	return c.JSON(code, envelope{Success: false, Message: msg})
}
