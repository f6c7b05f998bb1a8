package generator

import (
	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/model"
	"realty-content-engine/pkg/imageprovider"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
	"realty-content-engine/pkg/websearch"
)

// Deps bundles the shared capabilities every generator draws from.
// Images, Search, and Guard may be nil; generators degrade accordingly.
type Deps struct {
	Logger pkgLog.Logger
	LLM    *llmprovider.Manager
	Images *imageprovider.Manager
	Search websearch.Provider
	Guard  guardrails.UseCase
}

// Registry holds one generator per content type, with the general
// generator as the total fallback so dispatch can never miss.
type Registry struct {
	byType  map[model.ContentType]Generator
	general Generator
}

// NewRegistry builds the full generator set.
func NewRegistry(deps Deps) *Registry {
	prompts := NewImagePromptBuilder(deps.LLM, deps.Logger)
	general := NewGeneral(deps.LLM, deps.Logger)

	r := &Registry{
		byType:  make(map[model.ContentType]Generator),
		general: general,
	}

	r.byType[model.ContentTypeResearch] = NewResearch(deps.LLM, deps.Search, deps.Logger)
	r.byType[model.ContentTypeBlog] = NewBlog(deps.LLM, deps.Images, prompts, deps.Guard, deps.Logger)
	r.byType[model.ContentTypeLinkedIn] = NewLinkedIn(deps.LLM, deps.Logger)
	r.byType[model.ContentTypeInstagram] = NewInstagram(deps.LLM, deps.Images, deps.Guard, deps.Logger)
	r.byType[model.ContentTypeImage] = NewImage(deps.LLM, deps.Images, prompts, deps.Logger)
	r.byType[model.ContentTypeStrategy] = NewStrategy(deps.LLM, deps.Logger)
	r.byType[model.ContentTypeGeneral] = general

	return r
}

// Register replaces the generator for a content type. Used by tests and
// by callers that bring their own handler implementations.
func (r *Registry) Register(t model.ContentType, g Generator) {
	r.byType[t] = g
}

// ForType returns the generator for a content type; unknown types fall
// back to the general generator.
func (r *Registry) ForType(t model.ContentType) Generator {
	if g, ok := r.byType[t]; ok {
		return g
	}
	return r.general
}

// Instagram returns the concrete instagram generator when it has not
// been replaced, for the direct social-post composite.
func (r *Registry) Instagram() *InstagramGenerator {
	if g, ok := r.byType[model.ContentTypeInstagram].(*InstagramGenerator); ok {
		return g
	}
	return nil
}
