package guardrails

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// TopicalGuard restricts requests to the real estate domain. Keyword
// scoring runs first; low-confidence verdicts escalate to a semantic LLM
// check when one is available.
type TopicalGuard struct {
	lex       *Lexicon
	llm       *llmprovider.Manager
	threshold float64
	onError   ErrorPolicy
	l         pkgLog.Logger
}

// NewTopicalGuard builds a topical guard over the given lexicon. llm may
// be nil, which disables the semantic pass.
func NewTopicalGuard(lex *Lexicon, llm *llmprovider.Manager, threshold float64, onError ErrorPolicy, l pkgLog.Logger) *TopicalGuard {
	if threshold <= 0 {
		threshold = DefaultSemanticThreshold
	}
	return &TopicalGuard{
		lex:       lex,
		llm:       llm,
		threshold: threshold,
		onError:   onError,
		l:         l,
	}
}

// CheckTopic scores the input against domain and off-domain keyword sets.
// The returned error is non-nil only when a semantic call failed.
func (g *TopicalGuard) CheckTopic(ctx context.Context, input string) (TopicCheck, error) {
	lower := strings.ToLower(input)

	domainMatches := matchDistinct(g.lex.realEstatePattern, lower)
	offMatches := matchDistinct(g.lex.offTopicPattern, lower)

	domainScore := len(domainMatches)
	offScore := len(offMatches)
	total := domainScore + offScore

	if total == 0 {
		// No indicators either way. Prefer a semantic opinion, otherwise
		// allow the ambiguous request.
		if g.llm != nil {
			return g.semanticTopicCheck(ctx, input)
		}
		return TopicCheck{
			IsOnTopic:  true,
			Confidence: 0.5,
			Reason:     "No clear topic indicators found, allowing by default",
		}, nil
	}

	confidence := float64(domainScore) / float64(total)
	isOnTopic := domainScore > offScore || domainScore >= 1

	reason := fmt.Sprintf("Found %d real estate keyword(s)", domainScore)
	if !isOnTopic {
		reason = fmt.Sprintf("Found %d off-topic indicator(s) vs %d real estate keyword(s)", offScore, domainScore)
	}

	return TopicCheck{
		IsOnTopic:       isOnTopic,
		Confidence:      confidence,
		Reason:          reason,
		MatchedKeywords: domainMatches,
		OffTopicMatches: offMatches,
	}, nil
}

// Validate runs the topical evaluation, escalating to the semantic check
// when keyword confidence is below the threshold.
func (g *TopicalGuard) Validate(ctx context.Context, input string) model.GuardrailResult {
	check, semErr := g.CheckTopic(ctx, input)

	if check.Confidence < g.threshold && g.llm != nil {
		check, semErr = g.semanticTopicCheck(ctx, input)
	}

	details := map[string]interface{}{
		"is_on_topic":       check.IsOnTopic,
		"confidence":        check.Confidence,
		"reason":            check.Reason,
		"matched_keywords":  check.MatchedKeywords,
		"off_topic_matches": check.OffTopicMatches,
	}
	if semErr != nil {
		details["error"] = semErr.Error()
	}

	if check.IsOnTopic {
		return model.GuardrailResult{Passed: true, Details: details}
	}

	g.l.Infof(ctx, "%s: blocked off-topic request: %s", LogPrefixTopicalGuard, truncateForLog(input))
	return model.GuardrailResult{Passed: false, Message: MsgOffTopic, Details: details}
}

// Suggestions returns example requests that pass the topical guard.
func (g *TopicalGuard) Suggestions() []string {
	return append([]string(nil), topicSuggestions...)
}

// semanticTopicCheck asks the LLM whether the request belongs to the real
// estate domain. On call failure the verdict follows the configured error
// policy.
func (g *TopicalGuard) semanticTopicCheck(ctx context.Context, input string) (TopicCheck, error) {
	if g.llm == nil {
		return TopicCheck{
			IsOnTopic:  true,
			Confidence: 0.5,
			Reason:     "No LLM client for semantic analysis",
		}, nil
	}

	req := llmprovider.NewTextRequest(fmt.Sprintf(semanticTopicPrompt, input), semanticTemperature, semanticMaxTokens)
	resp, err := g.llm.GenerateContent(ctx, req)
	if err != nil {
		g.l.Errorf(ctx, "%s: semantic topic check failed: %v", LogPrefixTopicalGuard, err)
		check := TopicCheck{
			IsOnTopic:  g.onError != PolicyBlock,
			Confidence: 0.5,
			Reason:     fmt.Sprintf("Semantic analysis failed: %v", err),
		}
		return check, err
	}

	verdict := strings.ToUpper(strings.TrimSpace(resp.Text()))

	return TopicCheck{
		IsOnTopic:  strings.Contains(verdict, "ON_TOPIC"),
		Confidence: 0.85,
		Reason:     "Semantic analysis determined topic relevance",
	}, nil
}

var topicSuggestions = []string{
	"Write a property listing description for a 3-bedroom house",
	"Create a LinkedIn post about home buying tips",
	"Research current real estate market trends",
	"Generate a blog post about first-time home buyers",
	"Create marketing content for a luxury condo",
	"Write about mortgage rates and financing options",
	"Create social media content for a real estate agent",
	"Generate an image for a property listing",
}
