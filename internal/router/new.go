package router

import (
	"context"
	"regexp"

	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
)

// Router classifies a user request into a content type.
type Router interface {
	Route(ctx context.Context, userInput string, history []model.Message) model.RoutingDecision
	HandlerFor(contentType model.ContentType) string
}

// ContentRouter routes deterministically through four tiers: intent
// patterns, keyword scoring, conversation history, then the general
// fallback.
type ContentRouter struct {
	patterns map[model.ContentType][]*regexp.Regexp
	l        pkgLog.Logger
}

// Ensure ContentRouter implements Router interface
var _ Router = (*ContentRouter)(nil)

// New compiles the intent patterns and returns a ContentRouter.
func New(l pkgLog.Logger) *ContentRouter {
	compiled := make(map[model.ContentType][]*regexp.Regexp, len(intentPatterns))
	for contentType, patterns := range intentPatterns {
		list := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			list = append(list, regexp.MustCompile(`(?i)`+p))
		}
		compiled[contentType] = list
	}

	return &ContentRouter{
		patterns: compiled,
		l:        l,
	}
}
