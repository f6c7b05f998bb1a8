package usecase

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/model"
)

// contentPrompts template the second phase of the research-first flow.
var contentPrompts = map[model.ContentType]string{
	model.ContentTypeBlog:     content.BlogFromResearchTemplate,
	model.ContentTypeLinkedIn: content.LinkedInFromResearchTemplate,
	model.ContentTypeStrategy: content.StrategyFromResearchTemplate,
}

// RunWithResearch chains two workflow runs in one session: a research
// pass, then content generation grounded on its findings. A failed
// research pass ends the flow immediately.
func (uc *implUseCase) RunWithResearch(ctx context.Context, input content.ResearchInput) content.ResearchOutput {
	topic := strings.TrimSpace(input.Topic)
	if topic == "" {
		return content.ResearchOutput{
			Error:     content.ErrEmptyTopic.Error(),
			SessionID: input.SessionID,
		}
	}

	template, ok := contentPrompts[input.ContentType]
	if !ok {
		return content.ResearchOutput{
			Error:     fmt.Sprintf("%s: %s", content.ErrUnsupportedType.Error(), input.ContentType),
			SessionID: input.SessionID,
		}
	}

	uc.l.Infof(ctx, "%s: topic=%q type=%s", LogPrefixResearch, topic, input.ContentType)

	research := uc.Run(ctx, content.RunInput{
		UserInput: fmt.Sprintf(content.ResearchPromptTemplate, topic),
		SessionID: input.SessionID,
	})
	if !research.Success {
		return content.ResearchOutput{
			Error:      research.Error,
			Content:    research.Content,
			SessionID:  research.SessionID,
			Guardrails: research.Guardrails,
		}
	}

	// Same session, so the stored research context grounds the writer.
	generated := uc.Run(ctx, content.RunInput{
		UserInput: fmt.Sprintf(template, topic),
		SessionID: research.SessionID,
	})

	return content.ResearchOutput{
		Success:    generated.Success,
		Research:   research.Content,
		Content:    generated.Content,
		Error:      generated.Error,
		SessionID:  generated.SessionID,
		Guardrails: generated.Guardrails,
	}
}
