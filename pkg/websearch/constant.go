package websearch

import "time"

const (
	// DefaultSerpBaseURL is the SerpAPI search endpoint
	DefaultSerpBaseURL = "https://serpapi.com/search"

	// DefaultBraveBaseURL is the Brave Search API root
	DefaultBraveBaseURL = "https://api.search.brave.com/res/v1"

	// DefaultEngine is the SerpAPI engine used for web results
	DefaultEngine = "google"

	// DefaultNumResults is the result count when a query does not set one
	DefaultNumResults = 10

	// DefaultLocation biases results when a query does not set one
	DefaultLocation = "United States"

	// DefaultLanguage is the interface language parameter
	DefaultLanguage = "en"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)
