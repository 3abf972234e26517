package client

import "errors"

var (
	// ErrUnauthorized covers auth failures: bad credentials, a rejected
	// registration, an invalid or expired token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers transport-level failures and timeouts.
	ErrUnavailable = errors.New("server unavailable")

	// ErrDecode covers malformed response payloads.
	ErrDecode = errors.New("malformed response")

	// ErrTokenNotFound is returned by TokenExpiry when no token is stored.
	ErrTokenNotFound = errors.New("no stored token")
)
