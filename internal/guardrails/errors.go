package guardrails

import "errors"

var (
	ErrUnknownGuard = errors.New("unknown guardrail type")
)
