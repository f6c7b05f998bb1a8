package quality

import "realty-content-engine/internal/model"

// Log prefixes
const (
	LogPrefixValidate = "internal.quality.Validate"
)

// Each dimension contributes up to dimensionMax points; four dimensions
// give the 0..100 score.
const dimensionMax = 25

// Score dimensions.
const (
	DimensionLength       = "length"
	DimensionStructure    = "structure"
	DimensionIndicators   = "indicators"
	DimensionCompleteness = "completeness"
)

// lengthTarget bounds the expected word count of the body text.
type lengthTarget struct {
	Min int
	Max int // 0 means unbounded
}

var lengthTargets = map[model.ContentType]lengthTarget{
	model.ContentTypeBlog:      {Min: 800, Max: 3000},
	model.ContentTypeLinkedIn:  {Min: 50, Max: 400},
	model.ContentTypeInstagram: {Min: 20, Max: 250},
	model.ContentTypeStrategy:  {Min: 300, Max: 0},
	model.ContentTypeResearch:  {Min: 200, Max: 0},
	model.ContentTypeGeneral:   {Min: 10, Max: 0},
}

// typeIndicators are phrases a solid piece of each type should carry.
// Scoring is proportional to how many appear.
var typeIndicators = map[model.ContentType][]string{
	model.ContentTypeBlog:      {"#", "##", "conclusion"},
	model.ContentTypeLinkedIn:  {"#", "?"},
	model.ContentTypeInstagram: {"#"},
	model.ContentTypeStrategy:  {"goal", "audience", "metric"},
	model.ContentTypeResearch:  {"summary", "finding", "source"},
}

// incompleteMarkers flag generations that trailed off or leaked
// scaffolding into the output.
var incompleteMarkers = []string{
	"[insert",
	"[add",
	"[your",
	"lorem ipsum",
	"as an ai",
	"i cannot",
	"...",
}
