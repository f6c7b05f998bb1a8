package guardrails

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens when a semantic evaluator call fails:
// allow lets the request through with the failure recorded in the result
// details, block treats the failure as a violation.
type ErrorPolicy string

const (
	PolicyAllow ErrorPolicy = "allow"
	PolicyBlock ErrorPolicy = "block"
)

// ParseErrorPolicy maps a config string onto an ErrorPolicy. The empty
// string defaults to allow.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyAllow):
		return PolicyAllow, nil
	case string(PolicyBlock):
		return PolicyBlock, nil
	default:
		return "", fmt.Errorf("unknown evaluator error policy: %q", s)
	}
}

// Config controls which guards run and how strict they are.
type Config struct {
	TopicalEnabled    bool
	SafetyEnabled     bool
	StrictMode        bool
	SemanticThreshold float64
	OnEvaluatorError  ErrorPolicy
}

// ProfanityCheck is the outcome of the deterministic profanity scan.
type ProfanityCheck struct {
	HasProfanity bool     `json:"has_profanity"`
	Words        []string `json:"profanity_words"`
	Severity     string   `json:"severity"`
}

// InappropriateCheck is the outcome of the content-category scan.
type InappropriateCheck struct {
	HasInappropriate bool     `json:"has_inappropriate"`
	Categories       []string `json:"categories"`
	Severity         string   `json:"severity"`
}

// ImagePromptCheck is the outcome of the image-prompt safety scan.
type ImagePromptCheck struct {
	IsSafe        bool           `json:"is_safe"`
	Issues        []string       `json:"issues"`
	Profanity     ProfanityCheck `json:"profanity"`
	Inappropriate []string       `json:"inappropriate_content"`
}

// SemanticCheck is the verdict of an LLM-backed safety evaluation.
type SemanticCheck struct {
	IsSafe     bool    `json:"is_safe"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// TopicCheck is the verdict of the topical relevance evaluation.
type TopicCheck struct {
	IsOnTopic       bool     `json:"is_on_topic"`
	Confidence      float64  `json:"confidence"`
	Reason          string   `json:"reason"`
	MatchedKeywords []string `json:"matched_keywords"`
	OffTopicMatches []string `json:"off_topic_matches"`
}

// Status reports which guards are configured and live.
type Status struct {
	TopicalEnabled     bool `json:"topical_enabled"`
	SafetyEnabled      bool `json:"safety_enabled"`
	LLMClientAvailable bool `json:"llm_client_available"`
	TopicalGuardActive bool `json:"topical_guard_active"`
	SafetyGuardActive  bool `json:"safety_guard_active"`
}
