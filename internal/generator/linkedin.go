package generator

import (
	"context"
	"fmt"

	"realty-content-engine/internal/model"
	"realty-content-engine/internal/router"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// LinkedInGenerator writes professional-network posts.
type LinkedInGenerator struct {
	l   pkgLog.Logger
	llm *llmprovider.Manager
}

// NewLinkedIn creates a LinkedInGenerator.
func NewLinkedIn(llm *llmprovider.Manager, l pkgLog.Logger) *LinkedInGenerator {
	return &LinkedInGenerator{l: l, llm: llm}
}

func (g *LinkedInGenerator) Name() string  { return router.HandlerLinkedIn }
func (g *LinkedInGenerator) Label() string { return "LinkedIn writing" }

func (g *LinkedInGenerator) Execute(ctx context.Context, in Input) (Output, error) {
	prompt := fmt.Sprintf(linkedinPromptTemplate, in.UserInput)
	if research := researchContext(in.Context); research != "" {
		prompt += fmt.Sprintf(blogResearchContextTemplate, research)
	}

	content, err := generateText(ctx, g.llm, systemPromptLinkedIn, prompt, defaultTemperature, postMaxTokens)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Content:     content,
		ContentType: model.ContentTypeLinkedIn,
		Metadata: map[string]interface{}{
			"word_count": wordCount(content),
		},
	}, nil
}
