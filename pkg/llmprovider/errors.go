package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed means every provider in the fallback chain failed.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured means the chain is empty.
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest means the generation request is malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderTimeout means a single provider request timed out.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderRateLimited means the provider rejected the request on quota.
	ErrProviderRateLimited = errors.New("provider rate limited")
)

// ProviderError tags a failure with the provider that produced it so the
// manager can log which link of the chain broke.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
