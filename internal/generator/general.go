package generator

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/model"
	"realty-content-engine/internal/router"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// GeneralGenerator answers free-form questions that no specialized
// generator claimed. It folds recent conversation history into the
// prompt for continuity.
type GeneralGenerator struct {
	l   pkgLog.Logger
	llm *llmprovider.Manager
}

// NewGeneral creates a GeneralGenerator.
func NewGeneral(llm *llmprovider.Manager, l pkgLog.Logger) *GeneralGenerator {
	return &GeneralGenerator{l: l, llm: llm}
}

func (g *GeneralGenerator) Name() string  { return router.HandlerGeneral }
func (g *GeneralGenerator) Label() string { return "Query handling" }

func (g *GeneralGenerator) Execute(ctx context.Context, in Input) (Output, error) {
	prompt := in.UserInput

	if history := recentExchanges(in.History, 4); history != "" {
		prompt = fmt.Sprintf("Conversation so far:\n%s\nUser question: %s", history, in.UserInput)
	}

	content, err := generateText(ctx, g.llm, systemPromptGeneral, prompt, defaultTemperature, postMaxTokens)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Content:     content,
		ContentType: model.ContentTypeGeneral,
		Metadata:    map[string]interface{}{},
	}, nil
}

// recentExchanges renders the last few messages as prompt context.
func recentExchanges(history []model.Message, limit int) string {
	if len(history) == 0 {
		return ""
	}
	start := len(history) - limit
	if start < 0 {
		start = 0
	}

	var sb strings.Builder
	for _, msg := range history[start:] {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, truncatePreview(msg.Content, 300))
	}
	return sb.String()
}
