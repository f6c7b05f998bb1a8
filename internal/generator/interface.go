package generator

import (
	"context"

	"realty-content-engine/internal/model"
)

// Generator produces content for one content type. The workflow treats
// every generator uniformly: validated input plus routed metadata in,
// markdown content plus metadata out.
type Generator interface {
	// Name returns the agent identifier used in routing decisions.
	Name() string

	// Label is the human-readable name used in user-facing error
	// messages ("<Label> failed: ...").
	Label() string

	// Execute generates content for the given input. Errors returned
	// here are converted to structured failures at the dispatch
	// boundary; generators never see session state directly.
	Execute(ctx context.Context, in Input) (Output, error)
}

// Input is everything a generator may consult while producing content.
type Input struct {
	UserInput string
	Decision  model.RoutingDecision
	History   []model.Message
	Context   map[string]interface{}
}

// Output is the uniform generator result contract.
type Output struct {
	Content     string
	ContentType model.ContentType
	Metadata    map[string]interface{}
}
