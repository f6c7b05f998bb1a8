package repository

import "errors"

// Domain-specific errors for history repositories.
var (
	ErrEntryNotFound = errors.New("history entry not found")
	ErrEmptyContent  = errors.New("content is empty")
	ErrEmptyType     = errors.New("content type is empty")
)
