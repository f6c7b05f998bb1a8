package quality

import (
	"context"
	"fmt"
	"strings"

	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
)

// Report is the quality assessment of one generated piece.
type Report struct {
	ContentType model.ContentType `json:"content_type"`
	Score       int               `json:"score"` // 0..100
	Grade       string            `json:"grade"` // A..F
	Breakdown   map[string]int    `json:"breakdown"`
	Issues      []string          `json:"issues,omitempty"`
	Passed      bool              `json:"passed"` // score >= 60 and no completeness issues
}

// Validator scores generated content against per-type expectations.
type Validator struct {
	l pkgLog.Logger
}

// New creates a Validator.
func New(l pkgLog.Logger) *Validator {
	return &Validator{l: l}
}

// Validate scores one piece of content. Types without expectations score
// on length and completeness alone, with the remaining dimensions
// granted in full.
func (v *Validator) Validate(ctx context.Context, contentType model.ContentType, content string) Report {
	report := Report{
		ContentType: contentType,
		Breakdown:   map[string]int{},
	}

	var issues []string

	lengthScore, lengthIssues := v.scoreLength(contentType, content)
	report.Breakdown[DimensionLength] = lengthScore
	issues = append(issues, lengthIssues...)

	structureScore, structureIssues := v.scoreStructure(contentType, content)
	report.Breakdown[DimensionStructure] = structureScore
	issues = append(issues, structureIssues...)

	indicatorScore, indicatorIssues := v.scoreIndicators(contentType, content)
	report.Breakdown[DimensionIndicators] = indicatorScore
	issues = append(issues, indicatorIssues...)

	completeScore, completeIssues := v.scoreCompleteness(content)
	report.Breakdown[DimensionCompleteness] = completeScore
	issues = append(issues, completeIssues...)

	for _, s := range report.Breakdown {
		report.Score += s
	}
	report.Grade = gradeFor(report.Score)
	report.Issues = issues
	report.Passed = report.Score >= 60 && completeScore == dimensionMax

	v.l.Infof(ctx, "%s: type=%s score=%d grade=%s issues=%d",
		LogPrefixValidate, contentType, report.Score, report.Grade, len(issues))

	return report
}

func (v *Validator) scoreLength(contentType model.ContentType, content string) (int, []string) {
	target, ok := lengthTargets[contentType]
	if !ok {
		return dimensionMax, nil
	}

	words := len(strings.Fields(content))
	switch {
	case words >= target.Min && (target.Max == 0 || words <= target.Max):
		return dimensionMax, nil
	case words < target.Min:
		// Partial credit proportional to how close it got.
		score := dimensionMax * words / target.Min
		return score, []string{fmt.Sprintf("too short: %d words, expected at least %d", words, target.Min)}
	default:
		return dimensionMax / 2, []string{fmt.Sprintf("too long: %d words, expected at most %d", words, target.Max)}
	}
}

func (v *Validator) scoreStructure(contentType model.ContentType, content string) (int, []string) {
	switch contentType {
	case model.ContentTypeBlog, model.ContentTypeStrategy, model.ContentTypeResearch:
		hasTitle := strings.Contains(content, "# ")
		sections := strings.Count(content, "\n## ")
		switch {
		case hasTitle && sections >= 2:
			return dimensionMax, nil
		case hasTitle || sections > 0:
			return dimensionMax / 2, []string{"weak structure: missing title or section headings"}
		default:
			return 0, []string{"no markdown structure found"}
		}
	case model.ContentTypeLinkedIn, model.ContentTypeInstagram:
		paragraphs := 0
		for _, p := range strings.Split(content, "\n\n") {
			if strings.TrimSpace(p) != "" {
				paragraphs++
			}
		}
		if paragraphs >= 2 {
			return dimensionMax, nil
		}
		return dimensionMax / 2, []string{"post should separate hook, body, and hashtags"}
	default:
		return dimensionMax, nil
	}
}

func (v *Validator) scoreIndicators(contentType model.ContentType, content string) (int, []string) {
	indicators, ok := typeIndicators[contentType]
	if !ok || len(indicators) == 0 {
		return dimensionMax, nil
	}

	lower := strings.ToLower(content)
	found := 0
	var missing []string
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			found++
		} else {
			missing = append(missing, ind)
		}
	}

	score := dimensionMax * found / len(indicators)
	if len(missing) == 0 {
		return score, nil
	}
	return score, []string{fmt.Sprintf("missing expected elements: %s", strings.Join(missing, ", "))}
}

func (v *Validator) scoreCompleteness(content string) (int, []string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0, []string{"content is empty"}
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range incompleteMarkers {
		if marker == "..." {
			if strings.HasSuffix(trimmed, "...") {
				return dimensionMax / 2, []string{"content appears truncated"}
			}
			continue
		}
		if strings.Contains(lower, marker) {
			return 0, []string{fmt.Sprintf("content contains placeholder text (%q)", marker)}
		}
	}
	return dimensionMax, nil
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
