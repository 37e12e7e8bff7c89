package fakeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/habitek/propmobile/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	s.mu.Lock()
	acct, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		return domain.ErrInvalidCredentials
	}

	token, err := s.sign(&acct.User)
	if err != nil {
		return err
	}
	user := acct.User
	return respondOK(c, http.StatusOK, loginResponse{Token: token, User: &user})
}

func (s *Server) handleLogout(c echo.Context) error {
	raw, _ := c.Get("token").(string)
	s.mu.Lock()
	s.revoked[raw] = struct{}{}
	s.mu.Unlock()
	return respondOK(c, http.StatusOK, nil)
}

func (s *Server) handleMe(c echo.Context) error {
	u := ctxUser(c)
	return respondOK(c, http.StatusOK, u)
}

// handleProperties serves a fixed listing; enough surface for the client's
// authenticated-fetch and role-gating paths.
func (s *Server) handleProperties(c echo.Context) error {
	props := []map[string]any{
		{
			"id":       "p-100",
			"name":     "Vista Alegre 4B",
			"address":  "Av. Reforma 120, CDMX",
			"owner_id": "u-owner",
			"rent":     1250.0,
			"currency": "MXN",
			"occupied": true,
		},
		{
			"id":       "p-101",
			"name":     "Casa Roble",
			"address":  "Calle 5 de Mayo 88, Puebla",
			"owner_id": "u-owner",
			"rent":     980.0,
			"currency": "MXN",
			"occupied": false,
		},
	}
	return respondOK(c, http.StatusOK, props)
}
