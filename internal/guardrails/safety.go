package guardrails

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// SafetyGuard blocks profanity and inappropriate content. Deterministic
// lexicon checks run first; in strict mode a semantic LLM check covers
// disguised or contextual violations the lexicon misses.
type SafetyGuard struct {
	lex        *Lexicon
	llm        *llmprovider.Manager
	strictMode bool
	onError    ErrorPolicy
	l          pkgLog.Logger
}

// NewSafetyGuard builds a safety guard over the given lexicon. llm may be
// nil, which disables the semantic pass.
func NewSafetyGuard(lex *Lexicon, llm *llmprovider.Manager, strictMode bool, onError ErrorPolicy, l pkgLog.Logger) *SafetyGuard {
	return &SafetyGuard{
		lex:        lex,
		llm:        llm,
		strictMode: strictMode,
		onError:    onError,
		l:          l,
	}
}

// CheckProfanity scans text for direct and obfuscated profanity.
func (g *SafetyGuard) CheckProfanity(text string) ProfanityCheck {
	lower := strings.ToLower(text)

	matches := matchDistinct(g.lex.profanityPattern, lower)
	matches = appendDistinct(matches, g.checkObfuscated(lower))

	return ProfanityCheck{
		HasProfanity: len(matches) > 0,
		Words:        matches,
		Severity:     profanitySeverity(len(matches)),
	}
}

// checkObfuscated detects character-substitution disguises. Each match is
// expanded to its containing token first so allowlisted words that merely
// contain a profanity substring do not trigger.
func (g *SafetyGuard) checkObfuscated(lower string) []string {
	var detected []string
	for _, p := range g.lex.leetPatterns {
		for _, loc := range p.re.FindAllStringIndex(lower, -1) {
			token := containingToken(lower, loc[0], loc[1])
			if g.lex.isSafeWord(token) {
				continue
			}
			detected = append(detected, p.canonical)
			break
		}
	}
	return detected
}

// CheckInappropriate scans text for harmful content categories.
func (g *SafetyGuard) CheckInappropriate(text string) InappropriateCheck {
	lower := strings.ToLower(text)
	matches := matchDistinct(g.lex.inappropriatePattern, lower)

	return InappropriateCheck{
		HasInappropriate: len(matches) > 0,
		Categories:       matches,
		Severity:         g.inappropriateSeverity(matches, lower),
	}
}

// CheckImagePrompt scans an image-generation prompt against the
// image-specific category set plus the profanity check.
func (g *SafetyGuard) CheckImagePrompt(prompt string) ImagePromptCheck {
	lower := strings.ToLower(prompt)
	imageMatches := matchDistinct(g.lex.imagePattern, lower)

	profanity := g.CheckProfanity(prompt)
	issues := appendDistinct(append([]string(nil), imageMatches...), profanity.Words)

	return ImagePromptCheck{
		IsSafe:        len(issues) == 0,
		Issues:        issues,
		Profanity:     profanity,
		Inappropriate: imageMatches,
	}
}

// ValidateText runs the full safety evaluation for text content.
func (g *SafetyGuard) ValidateText(ctx context.Context, text string) model.GuardrailResult {
	profanity := g.CheckProfanity(text)
	inappropriate := g.CheckInappropriate(text)

	details := map[string]interface{}{
		"profanity":     profanity,
		"inappropriate": inappropriate,
	}

	hasIssues := profanity.HasProfanity || inappropriate.HasInappropriate

	// Keyword-clean text still gets a semantic look in strict mode.
	if !hasIssues && g.strictMode && g.llm != nil {
		semantic, err := g.semanticCheck(ctx, text)
		details["semantic"] = semantic
		if err != nil {
			details["error"] = err.Error()
		}
		if !semantic.IsSafe {
			hasIssues = true
		}
	}

	if hasIssues {
		g.l.Warnf(ctx, "%s: blocked unsafe content: profanity=%v inappropriate=%v",
			LogPrefixSafetyGuard, profanity.Words, inappropriate.Categories)
		return model.GuardrailResult{Passed: false, Message: MsgBlockedContent, Details: details}
	}

	return model.GuardrailResult{Passed: true, Details: details}
}

// ValidateImagePrompt runs the full safety evaluation for an
// image-generation prompt.
func (g *SafetyGuard) ValidateImagePrompt(ctx context.Context, prompt string) model.GuardrailResult {
	check := g.CheckImagePrompt(prompt)

	var semantic *SemanticCheck
	var semErr error
	if check.IsSafe && g.strictMode && g.llm != nil {
		s, err := g.semanticCheck(ctx, prompt)
		semantic, semErr = &s, err
		if !s.IsSafe {
			check.IsSafe = false
		}
	}

	details := map[string]interface{}{
		"is_safe":               check.IsSafe,
		"issues":                check.Issues,
		"profanity":             check.Profanity,
		"inappropriate_content": check.Inappropriate,
	}
	if semantic != nil {
		details["semantic"] = *semantic
		if semErr != nil {
			details["error"] = semErr.Error()
		}
	}

	if !check.IsSafe {
		g.l.Warnf(ctx, "%s: blocked unsafe image prompt: %v", LogPrefixSafetyGuard, check.Issues)
		return model.GuardrailResult{Passed: false, Message: MsgBlockedImage, Details: details}
	}

	return model.GuardrailResult{Passed: true, Details: details}
}

// Validate dispatches to the text or image evaluation by kind.
func (g *SafetyGuard) Validate(ctx context.Context, content string, kind model.ValidationKind) model.GuardrailResult {
	if kind == model.ValidationImage {
		return g.ValidateImagePrompt(ctx, content)
	}
	return g.ValidateText(ctx, content)
}

// Sanitize masks profanity in text, keeping the first and last letter of
// each masked word.
func (g *SafetyGuard) Sanitize(text string) string {
	return g.lex.profanityPattern.ReplaceAllStringFunc(text, maskWord)
}

// semanticCheck asks the LLM whether the text is safe. The returned error
// is non-nil only when the LLM call itself failed; in that case the
// verdict follows the configured error policy.
func (g *SafetyGuard) semanticCheck(ctx context.Context, text string) (SemanticCheck, error) {
	if g.llm == nil {
		return SemanticCheck{IsSafe: true, Confidence: 0.5, Reason: "No LLM client for semantic analysis"}, nil
	}

	req := llmprovider.NewTextRequest(fmt.Sprintf(semanticSafetyPrompt, text), semanticTemperature, semanticMaxTokens)
	resp, err := g.llm.GenerateContent(ctx, req)
	if err != nil {
		g.l.Errorf(ctx, "%s: semantic safety check failed: %v", LogPrefixSafetyGuard, err)
		check := SemanticCheck{
			IsSafe:     g.onError != PolicyBlock,
			Confidence: 0.5,
			Reason:     fmt.Sprintf("Semantic analysis failed: %v", err),
		}
		return check, err
	}

	verdict := strings.ToUpper(strings.TrimSpace(resp.Text()))
	isSafe := strings.Contains(verdict, "SAFE") && !strings.Contains(verdict, "UNSAFE")

	return SemanticCheck{IsSafe: isSafe, Confidence: 0.9, Reason: "Semantic analysis completed"}, nil
}

func (g *SafetyGuard) inappropriateSeverity(matches []string, lower string) string {
	if len(matches) == 0 {
		return SeverityNone
	}
	for _, term := range g.lex.HighSeverityTerms {
		if strings.Contains(lower, term) {
			return SeverityHigh
		}
	}
	if len(matches) <= 2 {
		return SeverityMedium
	}
	return SeverityHigh
}

func profanitySeverity(count int) string {
	switch {
	case count == 0:
		return SeverityNone
	case count <= 1:
		return SeverityLow
	case count <= 3:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

func maskWord(word string) string {
	if len(word) <= 2 {
		return strings.Repeat("*", len(word))
	}
	return word[:1] + strings.Repeat("*", len(word)-2) + word[len(word)-1:]
}

// appendDistinct appends the items of extra not already present in base.
func appendDistinct(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, w := range base {
		seen[w] = struct{}{}
	}
	for _, w := range extra {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		base = append(base, w)
	}
	return base
}
