// Package api implements the REST client every screen talks through: one
// base URL, JSON envelopes, bearer-token injection, and the fail-closed 401
// teardown of the local session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/habitek/propmobile/internal/core/domain"
	"github.com/habitek/propmobile/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// envelope is the response shape every endpoint answers with.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Error is a non-401 HTTP failure, passed through to the calling screen
// unmodified for user-facing messaging.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Is lets callers match 403s with errors.Is(err, domain.ErrForbidden).
func (e *Error) Is(target error) bool {
	return target == domain.ErrForbidden && e.Status == http.StatusForbidden
}

// Client is the HTTP wrapper shared by all API calls.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenClearer
	log     zerolog.Logger
}

// NewClient builds a Client for baseURL. tokens supplies the bearer token
// and receives the 401 teardown; timeout <= 0 falls back to the default.
func NewClient(baseURL string, tokens ports.TokenClearer, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// Do issues a JSON request and decodes the envelope's data into out (out may
// be nil). Contract, in order:
//   - the bearer token is attached when the store yields one; a store read
//     failure is non-fatal and the request proceeds without the header
//   - an HTTP 401 deletes the stored token before the error is returned —
//     one-way authenticated→unauthenticated, no retry, no refresh flow
//   - any other HTTP or network failure passes through unmodified
//   - success=false envelopes become errors carrying the server message
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token, ok, err := c.tokens.Token(); err != nil {
		c.log.Warn().Err(err).Msg("token read failed, sending request unauthenticated")
	} else if ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil && resp.StatusCode < 400 {
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.teardown()
		if env.Message != "" {
			return fmt.Errorf("%s: %w", env.Message, domain.ErrUnauthorized)
		}
		return domain.ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}
	if !env.Success {
		return &Error{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// teardown is the documented 401 side effect: drop the local token so the
// next IsAuthenticated check reports false.
func (c *Client) teardown() {
	if err := c.tokens.DeleteToken(); err != nil {
		c.log.Warn().Err(err).Msg("token delete after 401 failed")
		return
	}
	c.log.Info().Msg("received 401, cleared stored token")
}
