package guardrails

import (
	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// New builds the guardrails use case. llm may be nil, in which case the
// guards run deterministic checks only.
func New(cfg Config, llm *llmprovider.Manager, l pkgLog.Logger) (UseCase, error) {
	lex, err := LoadLexicon()
	if err != nil {
		return nil, err
	}

	policy, err := ParseErrorPolicy(string(cfg.OnEvaluatorError))
	if err != nil {
		return nil, err
	}

	threshold := cfg.SemanticThreshold
	if threshold <= 0 {
		threshold = DefaultSemanticThreshold
	}

	uc := &usecase{
		lex:            lex,
		llm:            llm,
		l:              l,
		topicalEnabled: cfg.TopicalEnabled,
		safetyEnabled:  cfg.SafetyEnabled,
		strictMode:     cfg.StrictMode,
		threshold:      threshold,
		onError:        policy,
		topicalExempt: map[model.ContentType]bool{
			model.ContentTypeInstagram: true,
		},
	}

	if cfg.TopicalEnabled {
		uc.topical = NewTopicalGuard(lex, llm, threshold, policy, l)
	}
	if cfg.SafetyEnabled {
		uc.safety = NewSafetyGuard(lex, llm, cfg.StrictMode, policy, l)
	}

	return uc, nil
}
