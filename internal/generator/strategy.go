package generator

import (
	"context"
	"fmt"

	"realty-content-engine/internal/model"
	"realty-content-engine/internal/router"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// StrategyGenerator produces content-marketing strategy documents.
type StrategyGenerator struct {
	l   pkgLog.Logger
	llm *llmprovider.Manager
}

// NewStrategy creates a StrategyGenerator.
func NewStrategy(llm *llmprovider.Manager, l pkgLog.Logger) *StrategyGenerator {
	return &StrategyGenerator{l: l, llm: llm}
}

func (g *StrategyGenerator) Name() string  { return router.HandlerStrategy }
func (g *StrategyGenerator) Label() string { return "Strategy generation" }

func (g *StrategyGenerator) Execute(ctx context.Context, in Input) (Output, error) {
	prompt := fmt.Sprintf(strategyPromptTemplate, in.UserInput)
	if research := researchContext(in.Context); research != "" {
		prompt += fmt.Sprintf(blogResearchContextTemplate, research)
	}

	content, err := generateText(ctx, g.llm, systemPromptStrategy, prompt, defaultTemperature, longFormMaxTokens)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Content:     content,
		ContentType: model.ContentTypeStrategy,
		Metadata: map[string]interface{}{
			"word_count": wordCount(content),
		},
	}, nil
}
