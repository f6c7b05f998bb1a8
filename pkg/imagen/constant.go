package imagen

import "time"

const (
	// DefaultModel is the default Imagen model
	DefaultModel = "imagen-4.0-generate-001"

	// DefaultAPIURL is the default Generative Language API endpoint
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the default HTTP client timeout.
	// Image generation is slow; text-sized timeouts abort real requests.
	DefaultTimeout = 60 * time.Second

	// DefaultAspectRatio is used when a request does not set one.
	DefaultAspectRatio = "1:1"

	// MaxImagesPerRequest caps sampleCount per API limits.
	MaxImagesPerRequest = 4

	// SafetyFilterLevel is the only filter level this model accepts.
	SafetyFilterLevel = "block_low_and_above"

	// PersonGeneration controls whether people may appear in outputs.
	PersonGeneration = "allow_adult"
)
