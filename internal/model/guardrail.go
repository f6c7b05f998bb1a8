package model

// GuardName identifies which guardrail produced a verdict.
type GuardName string

const (
	GuardSafety      GuardName = "safety"
	GuardTopical     GuardName = "topical"
	GuardImageSafety GuardName = "image_safety"
)

// ValidationKind tells the safety guard which lexicon applies.
type ValidationKind string

const (
	ValidationText  ValidationKind = "text"
	ValidationImage ValidationKind = "image"
)

// GuardrailResult is the verdict of one validation pass. When Passed is
// false, Message carries the user-facing refusal and BlockedBy names the
// guard that fired. Details holds per-guard diagnostics keyed by guard name.
type GuardrailResult struct {
	Passed    bool                   `json:"passed"`
	Message   string                 `json:"message,omitempty"`
	BlockedBy GuardName              `json:"blocked_by,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Pass returns a result with no objections.
func Pass() GuardrailResult {
	return GuardrailResult{Passed: true, Details: map[string]interface{}{}}
}
