package router

import (
	"context"
	"fmt"
	"math"
	"strings"

	"realty-content-engine/internal/model"
)

// Route classifies userInput into a content type. Tiers are tried in
// order and the first hit wins; the general fallback always matches.
func (r *ContentRouter) Route(ctx context.Context, userInput string, history []model.Message) model.RoutingDecision {
	lower := strings.ToLower(strings.TrimSpace(userInput))

	if contentType, ok := r.matchPatterns(lower); ok {
		return r.decision(ctx, contentType, lower, ConfidencePattern, ReasonPatternMatch)
	}

	if contentType, score, ok := r.scoreKeywords(lower); ok {
		confidence := math.Min(ConfidenceKeywordCap, ConfidenceKeywordBase+ConfidenceKeywordStep*float64(score))
		return r.decision(ctx, contentType, lower, confidence, fmt.Sprintf(ReasonKeywordMatch, score))
	}

	if contentType, ok := r.inferFromHistory(history); ok {
		return r.decision(ctx, contentType, lower, ConfidenceHistory, ReasonHistoryContext)
	}

	return r.decision(ctx, model.ContentTypeGeneral, lower, ConfidenceDefault, ReasonDefault)
}

// HandlerFor maps a content type to its handler name.
func (r *ContentRouter) HandlerFor(contentType model.ContentType) string {
	if name, ok := handlerNames[contentType]; ok {
		return name
	}
	return HandlerGeneral
}

func (r *ContentRouter) matchPatterns(lower string) (model.ContentType, bool) {
	for _, contentType := range routingPriority {
		for _, pattern := range r.patterns[contentType] {
			if pattern.MatchString(lower) {
				return contentType, true
			}
		}
	}
	return "", false
}

func (r *ContentRouter) scoreKeywords(lower string) (model.ContentType, int, bool) {
	var (
		best      model.ContentType
		bestScore int
	)
	// Ties keep the earlier type in priority order.
	for _, contentType := range routingPriority {
		score := 0
		for _, keyword := range contentKeywords[contentType] {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = contentType
			bestScore = score
		}
	}
	if bestScore == 0 {
		return "", 0, false
	}
	return best, bestScore, true
}

func (r *ContentRouter) inferFromHistory(history []model.Message) (model.ContentType, bool) {
	if len(history) == 0 {
		return "", false
	}

	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}
	recent := history[start:]

	for i := len(recent) - 1; i >= 0; i-- {
		content := strings.ToLower(recent[i].Content)
		for _, contentType := range routingPriority {
			keywords := contentKeywords[contentType]
			if len(keywords) > historyKeywordsPerType {
				keywords = keywords[:historyKeywordsPerType]
			}
			for _, keyword := range keywords {
				if strings.Contains(content, keyword) {
					return contentType, true
				}
			}
		}
	}
	return "", false
}

func (r *ContentRouter) decision(ctx context.Context, contentType model.ContentType, lowerInput string, confidence float64, reasoning string) model.RoutingDecision {
	d := model.RoutingDecision{
		ContentType:      contentType,
		Confidence:       confidence,
		Reasoning:        reasoning,
		SuggestedHandler: r.HandlerFor(contentType),
		RequiresResearch: researchFirstTypes[contentType] && !strings.Contains(lowerInput, "research"),
		FollowUps:        append([]model.ContentType(nil), followUps[contentType]...),
	}

	r.l.Infof(ctx, "%s: routed to %s (confidence: %.2f, %s)", LogPrefixRoute, d.ContentType, d.Confidence, d.Reasoning)
	return d
}
