package content

import "errors"

// Domain-specific errors for the content package.
var (
	ErrEmptyInput           = errors.New("user input is empty")
	ErrEmptyQuery           = errors.New("search query is empty")
	ErrEmptyTopic           = errors.New("research topic is empty")
	ErrEmptyImageDesc       = errors.New("image description is empty")
	ErrUnsupportedType      = errors.New("unsupported content type for this flow")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
	ErrSchedulerUnavailable = errors.New("calendar scheduling is not configured")
	ErrEmptySlot            = errors.New("schedule slot phrase is empty")
)
