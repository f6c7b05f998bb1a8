package session

import "errors"

// Domain-specific errors for the session package.
var (
	ErrSessionNotFound = errors.New("session not found")
)
