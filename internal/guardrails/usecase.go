package guardrails

import (
	"context"
	"fmt"
	"sync"

	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

type usecase struct {
	mu sync.RWMutex

	topicalEnabled bool
	safetyEnabled  bool
	topical        *TopicalGuard
	safety         *SafetyGuard

	// Construction parameters, kept so guards enabled later are built
	// with the same settings.
	lex        *Lexicon
	llm        *llmprovider.Manager
	strictMode bool
	threshold  float64
	onError    ErrorPolicy

	// Content types that skip the topical check while still passing
	// through safety.
	topicalExempt map[model.ContentType]bool

	l pkgLog.Logger
}

func (uc *usecase) ValidateInput(ctx context.Context, input string, kind model.ValidationKind, contentType model.ContentType) model.GuardrailResult {
	return uc.validate(ctx, input, kind, uc.topicalExempt[contentType])
}

func (uc *usecase) ValidateSafetyOnly(ctx context.Context, input string, kind model.ValidationKind) model.GuardrailResult {
	return uc.validate(ctx, input, kind, true)
}

func (uc *usecase) validate(ctx context.Context, input string, kind model.ValidationKind, skipTopical bool) model.GuardrailResult {
	result := model.Pass()

	safety, topical := uc.activeGuards()

	// Safety always runs first and short-circuits on failure.
	if safety != nil {
		safetyRes := safety.Validate(ctx, input, kind)
		result.Details["safety"] = safetyRes
		if !safetyRes.Passed {
			uc.l.Infof(ctx, "%s: input blocked by safety guardrail: %s",
				LogPrefixValidateInput, truncateForLog(safety.Sanitize(input)))
			result.Passed = false
			result.Message = safetyRes.Message
			result.BlockedBy = model.GuardSafety
			return result
		}
	}

	if !skipTopical && topical != nil {
		topicalRes := topical.Validate(ctx, input)
		result.Details["topical"] = topicalRes
		if !topicalRes.Passed {
			uc.l.Infof(ctx, "%s: input blocked by topical guardrail: %s",
				LogPrefixValidateInput, truncateForLog(input))
			result.Passed = false
			result.Message = topicalRes.Message
			result.BlockedBy = model.GuardTopical
			return result
		}
	}

	return result
}

func (uc *usecase) ValidateOutput(ctx context.Context, output string, kind model.ValidationKind) model.GuardrailResult {
	result := model.Pass()

	safety, _ := uc.activeGuards()
	if safety != nil {
		safetyRes := safety.Validate(ctx, output, kind)
		result.Details["safety"] = safetyRes
		if !safetyRes.Passed {
			uc.l.Warnf(ctx, "%s: output blocked by safety guardrail", LogPrefixValidateOutput)
			result.Passed = false
			result.Message = MsgBlockedOutput
			result.BlockedBy = model.GuardSafety
		}
	}

	return result
}

func (uc *usecase) ValidateImageRequest(ctx context.Context, prompt string) model.GuardrailResult {
	result := uc.validate(ctx, prompt, model.ValidationImage, false)
	if !result.Passed {
		return result
	}

	safety, _ := uc.activeGuards()
	if safety != nil {
		imageRes := safety.ValidateImagePrompt(ctx, prompt)
		result.Details["image_safety"] = imageRes
		if !imageRes.Passed {
			uc.l.Infof(ctx, "%s: image prompt blocked: %s",
				LogPrefixImageRequest, truncateForLog(prompt))
			result.Passed = false
			result.Message = imageRes.Message
			result.BlockedBy = model.GuardImageSafety
		}
	}

	return result
}

func (uc *usecase) Enable(guard model.GuardName) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch guard {
	case model.GuardTopical:
		uc.topicalEnabled = true
		if uc.topical == nil {
			uc.topical = NewTopicalGuard(uc.lex, uc.llm, uc.threshold, uc.onError, uc.l)
		}
	case model.GuardSafety:
		uc.safetyEnabled = true
		if uc.safety == nil {
			uc.safety = NewSafetyGuard(uc.lex, uc.llm, uc.strictMode, uc.onError, uc.l)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGuard, guard)
	}

	return nil
}

func (uc *usecase) Disable(guard model.GuardName) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch guard {
	case model.GuardTopical:
		uc.topicalEnabled = false
	case model.GuardSafety:
		uc.safetyEnabled = false
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGuard, guard)
	}

	return nil
}

func (uc *usecase) IsEnabled() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.topicalEnabled || uc.safetyEnabled
}

func (uc *usecase) Status() Status {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	return Status{
		TopicalEnabled:     uc.topicalEnabled,
		SafetyEnabled:      uc.safetyEnabled,
		LLMClientAvailable: uc.llm != nil,
		TopicalGuardActive: uc.topical != nil,
		SafetyGuardActive:  uc.safety != nil,
	}
}

func (uc *usecase) TopicSuggestions() []string {
	uc.mu.RLock()
	topical := uc.topical
	uc.mu.RUnlock()

	if topical == nil {
		return []string{}
	}
	return topical.Suggestions()
}

// activeGuards snapshots the guards currently switched on.
func (uc *usecase) activeGuards() (*SafetyGuard, *TopicalGuard) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	var safety *SafetyGuard
	if uc.safetyEnabled {
		safety = uc.safety
	}
	var topical *TopicalGuard
	if uc.topicalEnabled {
		topical = uc.topical
	}
	return safety, topical
}

func truncateForLog(s string) string {
	runes := []rune(s)
	if len(runes) <= logPreviewChars {
		return s
	}
	return string(runes[:logPreviewChars]) + "..."
}
