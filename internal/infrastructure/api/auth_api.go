package api

import (
	"context"
	"net/http"

	"github.com/habitek/propmobile/internal/core/domain"
	"github.com/habitek/propmobile/internal/core/ports"
)

// AuthAPI implements ports.AuthAPI over the shared client.
type AuthAPI struct {
	client *Client
}

var _ ports.AuthAPI = (*AuthAPI)(nil)

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var out loginResponse
	err := a.client.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := a.client.Do(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
