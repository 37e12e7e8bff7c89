package fakeapi

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/habitek/propmobile/internal/core/domain"
)

const ctxUserKey = "user"

// requireAuth validates the bearer token and injects the account's user
// into the request context. Revoked (logged-out) tokens are rejected.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		raw := parts[1]

		s.mu.Lock()
		_, revoked := s.revoked[raw]
		s.mu.Unlock()
		if revoked {
			return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
		}

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return []byte(s.secret), nil
		})
		if err != nil || !tkn.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		email, _ := claims["email"].(string)
		s.mu.Lock()
		acct, ok := s.accounts[email]
		s.mu.Unlock()
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
		}

		c.Set(ctxUserKey, acct.User)
		c.Set("token", raw)
		return next(c)
	}
}

// requireRoles gates a route to the given roles, assuming requireAuth ran.
func (s *Server) requireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, _ := c.Get(ctxUserKey).(domain.User)
			if _, ok := allowed[u.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

func ctxUser(c echo.Context) domain.User {
	u, _ := c.Get(ctxUserKey).(domain.User)
	return u
}
