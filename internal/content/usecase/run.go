package usecase

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/generator"
	"realty-content-engine/internal/model"
)

// imageWords flag a request for image-aware validation before routing
// has resolved the content type.
var imageWords = []string{"image", "picture", "photo", "illustration", "render"}

// Run executes the workflow for one user request:
// session → guardrails → route → generate → store. Every failure mode is
// folded into the output; nothing escapes, panics included.
func (uc *implUseCase) Run(ctx context.Context, input content.RunInput) (out content.RunOutput) {
	if strings.TrimSpace(input.UserInput) == "" {
		return content.RunOutput{
			Error:     content.ErrEmptyInput.Error(),
			SessionID: input.SessionID,
		}
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = content.DefaultSessionID
	}
	sess := uc.sessions.GetOrCreate(sessionID, input.Context)
	sessionID = sess.ID

	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "%s: workflow panic: %v", LogPrefixRun, r)
			msg := fmt.Sprintf(content.MsgWorkflowFailure, r)
			uc.appendAssistant(ctx, sessionID, msg, nil)
			out = content.RunOutput{Error: msg, SessionID: sessionID}
		}
	}()

	// The user message lands in the transcript before validation, so a
	// blocked request still shows up in the conversation history.
	if err := uc.sessions.AddMessage(sessionID, model.RoleUser, input.UserInput, nil); err != nil {
		uc.l.Warnf(ctx, "%s: failed to record user message: %v", LogPrefixRun, err)
	}

	check := uc.guard.ValidateInput(ctx, input.UserInput, validationKind(input.UserInput), model.ContentTypeGeneral)
	if !check.Passed {
		return uc.blocked(ctx, sessionID, check)
	}

	history := uc.sessions.History(sessionID)

	decision, err := uc.route(ctx, input.UserInput, history)
	if err != nil {
		msg := fmt.Sprintf(content.MsgRoutingFailed, err)
		uc.appendAssistant(ctx, sessionID, msg, nil)
		return content.RunOutput{Error: msg, SessionID: sessionID}
	}

	uc.l.Infof(ctx, "%s: session=%s type=%s handler=%s confidence=%.2f",
		LogPrefixRun, sessionID, decision.ContentType, decision.SuggestedHandler, decision.Confidence)

	// Image requests get the full image-request validation before any
	// generation spend.
	if decision.ContentType == model.ContentTypeImage {
		if check := uc.guard.ValidateImageRequest(ctx, input.UserInput); !check.Passed {
			return uc.blocked(ctx, sessionID, check)
		}
	}

	if err := uc.sessions.SetCurrentHandler(sessionID, decision.SuggestedHandler); err != nil {
		uc.l.Warnf(ctx, "%s: failed to record handler: %v", LogPrefixRun, err)
	}

	gen := uc.registry.ForType(decision.ContentType)
	genOut, err := gen.Execute(ctx, generator.Input{
		UserInput: input.UserInput,
		Decision:  decision,
		History:   history,
		Context:   mergeContext(sess.Context, input.Context),
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: %s handler failed: %v", LogPrefixRun, decision.ContentType, err)
		msg := fmt.Sprintf(content.MsgHandlerFailed, gen.Label(), err)
		uc.appendAssistant(ctx, sessionID, msg, nil)
		return content.RunOutput{Error: msg, SessionID: sessionID}
	}

	uc.store(ctx, sessionID, input.UserInput, genOut)

	return content.RunOutput{
		Success:     true,
		Content:     genOut.Content,
		ContentType: genOut.ContentType.String(),
		SessionID:   sessionID,
		Metadata:    genOut.Metadata,
	}
}

// route isolates the router call so a routing panic surfaces as a
// routing failure rather than a workflow failure.
func (uc *implUseCase) route(ctx context.Context, userInput string, history []model.Message) (decision model.RoutingDecision, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	decision = uc.router.Route(ctx, userInput, history)
	if decision.ContentType == "" {
		return decision, fmt.Errorf("no content type resolved")
	}
	return decision, nil
}

// blocked finalizes a guardrail rejection: the message joins the
// transcript and the caller gets the structured block report.
func (uc *implUseCase) blocked(ctx context.Context, sessionID string, check model.GuardrailResult) content.RunOutput {
	uc.l.Warnf(ctx, "%s: session=%s blocked by %s", LogPrefixRun, sessionID, check.BlockedBy)

	uc.appendAssistant(ctx, sessionID, check.Message, map[string]interface{}{
		"blocked":    true,
		"blocked_by": string(check.BlockedBy),
	})

	return content.RunOutput{
		Content:     check.Message,
		ContentType: content.BlockedContentType,
		SessionID:   sessionID,
		Guardrails: content.GuardrailsInfo{
			Blocked:   true,
			BlockedBy: check.BlockedBy,
		},
	}
}

// store runs the persistence step for a successful generation: quality
// scoring, session content, durable history, the assistant message, and
// the research context handoff.
func (uc *implUseCase) store(ctx context.Context, sessionID, prompt string, genOut generator.Output) {
	uc.attachQuality(ctx, &genOut)

	if err := uc.sessions.AddGeneratedContent(sessionID, genOut.ContentType, genOut.Content); err != nil {
		uc.l.Warnf(ctx, "%s: failed to record generated content: %v", LogPrefixStore, err)
	}

	entry := model.HistoryEntry{
		SessionID:   sessionID,
		ContentType: genOut.ContentType,
		Content:     genOut.Content,
		Prompt:      prompt,
		Metadata:    genOut.Metadata,
	}
	id, err := uc.history.Append(ctx, entry)
	if err != nil {
		uc.l.Errorf(ctx, "%s: failed to persist history entry: %v", LogPrefixStore, err)
	} else if uc.vectorRepo != nil {
		entry.ID = id
		if err := uc.vectorRepo.EmbedEntry(ctx, entry); err != nil {
			uc.l.Warnf(ctx, "%s: failed to index entry %d: %v", LogPrefixStore, id, err)
		}
	}

	if genOut.ContentType == model.ContentTypeResearch {
		if err := uc.sessions.SetContext(sessionID, "research_results", genOut.Content); err != nil {
			uc.l.Warnf(ctx, "%s: failed to store research context: %v", LogPrefixStore, err)
		}
	}

	uc.appendAssistant(ctx, sessionID, genOut.Content, map[string]interface{}{
		"content_type": genOut.ContentType.String(),
	})
}

// attachQuality scores written content and attaches the report to the
// generation metadata. Scoring never blocks the result.
func (uc *implUseCase) attachQuality(ctx context.Context, genOut *generator.Output) {
	if uc.quality == nil {
		return
	}
	switch genOut.ContentType {
	case model.ContentTypeBlog, model.ContentTypeLinkedIn, model.ContentTypeStrategy:
	default:
		return
	}

	report := uc.quality.Validate(ctx, genOut.ContentType, genOut.Content)
	if genOut.Metadata == nil {
		genOut.Metadata = map[string]interface{}{}
	}
	genOut.Metadata["quality_score"] = report.Score
	genOut.Metadata["quality_grade"] = report.Grade
	if len(report.Issues) > 0 {
		genOut.Metadata["quality_issues"] = report.Issues
	}

	// Blog posts additionally get the search-optimization analysis.
	if genOut.ContentType == model.ContentTypeBlog && uc.optimizer != nil {
		seo := uc.optimizer.Analyze(ctx, genOut.Content, nil)
		genOut.Metadata["seo_score"] = seo.SEOScore
		genOut.Metadata["seo_grade"] = seo.Grade
		genOut.Metadata["readability"] = seo.Readability.Score
	}
}

func (uc *implUseCase) appendAssistant(ctx context.Context, sessionID, text string, metadata map[string]interface{}) {
	if err := uc.sessions.AddMessage(sessionID, model.RoleAssistant, text, metadata); err != nil {
		uc.l.Warnf(ctx, "%s: failed to record assistant message: %v", LogPrefixRun, err)
	}
}

// validationKind infers whether the request should be validated as an
// image request before routing has resolved a content type.
func validationKind(userInput string) model.ValidationKind {
	lower := strings.ToLower(userInput)
	for _, w := range imageWords {
		if strings.Contains(lower, w) {
			return model.ValidationImage
		}
	}
	return model.ValidationText
}

// mergeContext overlays the request context on the session context.
func mergeContext(sessionCtx, requestCtx map[string]interface{}) map[string]interface{} {
	if len(sessionCtx) == 0 && len(requestCtx) == 0 {
		return nil
	}
	merged := make(map[string]interface{}, len(sessionCtx)+len(requestCtx))
	for k, v := range sessionCtx {
		merged[k] = v
	}
	for k, v := range requestCtx {
		merged[k] = v
	}
	return merged
}
