package imageprovider

import "errors"

var (
	// ErrAllProvidersFailed indicates all providers failed to generate an image
	ErrAllProvidersFailed = errors.New("all image providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no image providers configured")

	// ErrEmptyPrompt indicates the request carried no prompt
	ErrEmptyPrompt = errors.New("image prompt is empty")
)
