package domain

import "errors"

var (
	// ErrInvalidCredentials covers rejected logins and malformed login input.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized signals an HTTP 401 from the API. By the time a caller
	// sees it the local token has already been cleared.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSession is returned by operations that require an authenticated
	// session when no token is stored.
	ErrNoSession = errors.New("no active session")

	// ErrNoRole signals that navigation was requested for a missing or
	// unrecognized role; the caller should redirect to authentication.
	ErrNoRole = errors.New("no recognized role")

	// ErrForbidden signals an HTTP 403: authenticated but not allowed.
	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
)
