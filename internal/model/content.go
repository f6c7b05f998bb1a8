package model

// ContentType identifies the kind of content a request resolves to.
type ContentType string

const (
	ContentTypeResearch  ContentType = "research"
	ContentTypeBlog      ContentType = "blog"
	ContentTypeLinkedIn  ContentType = "linkedin"
	ContentTypeInstagram ContentType = "instagram"
	ContentTypeImage     ContentType = "image"
	ContentTypeStrategy  ContentType = "strategy"
	ContentTypeGeneral   ContentType = "general"
)

// AllContentTypes lists every routable content type in routing priority order.
var AllContentTypes = []ContentType{
	ContentTypeInstagram,
	ContentTypeResearch,
	ContentTypeBlog,
	ContentTypeLinkedIn,
	ContentTypeImage,
	ContentTypeStrategy,
	ContentTypeGeneral,
}

// ParseContentType maps a raw string to a ContentType. Unknown values map
// to ContentTypeGeneral so callers never have to handle a parse failure.
func ParseContentType(s string) ContentType {
	switch ContentType(s) {
	case ContentTypeResearch, ContentTypeBlog, ContentTypeLinkedIn,
		ContentTypeInstagram, ContentTypeImage, ContentTypeStrategy,
		ContentTypeGeneral:
		return ContentType(s)
	default:
		return ContentTypeGeneral
	}
}

// String implements fmt.Stringer.
func (t ContentType) String() string {
	return string(t)
}

// RoutingDecision is the outcome of classifying a user request.
type RoutingDecision struct {
	ContentType      ContentType   // Resolved content type
	Confidence       float64       // 0..1, higher means stronger signal
	Reasoning        string        // Human-readable explanation of the match
	SuggestedHandler string        // Name of the handler that should execute
	RequiresResearch bool          // Whether a research pass should run first
	FollowUps        []ContentType // Content types that naturally follow this one
}
