package optimizer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	pkgLog "realty-content-engine/pkg/log"
)

// Analyzer scores content for search optimization: keyword usage,
// readability, and document structure.
type Analyzer struct {
	l pkgLog.Logger
}

// New creates an Analyzer.
func New(l pkgLog.Logger) *Analyzer {
	return &Analyzer{l: l}
}

var (
	titleRe     = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	headingRe   = regexp.MustCompile(`(?m)^#{2,6}\s+(.+)$`)
	listItemRe  = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	sentenceRe  = regexp.MustCompile(`[.!?]+`)
	markdownRe  = regexp.MustCompile("[*_`#>\\[\\]()!]")
	wordSplitRe = regexp.MustCompile(`\s+`)
)

// Analyze runs the full analysis. keywords may be empty, in which case
// the keyword component is scored neutrally.
func (a *Analyzer) Analyze(ctx context.Context, content string, keywords []string) Report {
	plain := plainWords(content)

	report := Report{
		Keywords:    a.keywordStats(content, plain, keywords),
		Readability: a.readability(content),
		Structure:   a.structure(content),
	}

	report.SEOScore = a.score(report, len(keywords) > 0)
	report.Grade = gradeFor(report.SEOScore)
	report.Suggestions = a.suggestions(report)

	a.l.Infof(ctx, "%s: score=%d grade=%s words=%d",
		LogPrefixAnalyze, report.SEOScore, report.Grade, report.Readability.Words)

	return report
}

func (a *Analyzer) keywordStats(content string, plain []string, keywords []string) []KeywordStats {
	if len(keywords) == 0 {
		return nil
	}

	lower := strings.ToLower(content)
	totalWords := len(plain)

	title := ""
	if m := titleRe.FindStringSubmatch(content); m != nil {
		title = strings.ToLower(m[1])
	}
	headings := strings.ToLower(strings.Join(headingRe.FindAllString(content, -1), "\n"))

	stats := make([]KeywordStats, 0, len(keywords))
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		count := strings.Count(lower, k)
		density := 0.0
		if totalWords > 0 {
			density = float64(count*wordCount(k)) / float64(totalWords) * 100
		}
		stats = append(stats, KeywordStats{
			Keyword:    k,
			Count:      count,
			Density:    density,
			InTitle:    strings.Contains(title, k),
			InHeadings: strings.Contains(headings, k),
		})
	}
	return stats
}

// readability computes the Flesch reading-ease score over the prose,
// with markdown markup stripped first.
func (a *Analyzer) readability(content string) ReadabilityReport {
	words := plainWords(content)
	if len(words) == 0 {
		return ReadabilityReport{Level: "empty"}
	}

	sentences := len(sentenceRe.FindAllString(content, -1))
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += syllableCount(w)
	}

	score := 206.835 - 1.015*(float64(len(words))/float64(sentences)) - 84.6*(float64(syllables)/float64(len(words)))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return ReadabilityReport{
		Score:     score,
		Level:     readabilityLevel(score),
		Sentences: sentences,
		Words:     len(words),
		Syllables: syllables,
	}
}

func (a *Analyzer) structure(content string) StructureReport {
	report := StructureReport{
		HasTitle:     titleRe.MatchString(content),
		HeadingCount: len(headingRe.FindAllString(content, -1)),
		ListItems:    len(listItemRe.FindAllString(content, -1)),
	}

	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" || strings.HasPrefix(para, "#") || listItemRe.MatchString(para) {
			continue
		}
		report.ParagraphCount++
		if wordCount(para) > maxParagraphWords {
			report.LongParagraphs++
		}
	}
	return report
}

// score combines the three components into 0..100.
func (a *Analyzer) score(r Report, keywordsRequested bool) int {
	keyword := keywordWeight
	if keywordsRequested {
		keyword = 0
		if len(r.Keywords) > 0 {
			per := float64(keywordWeight) / float64(len(r.Keywords))
			for _, kw := range r.Keywords {
				keyword += int(per * keywordScore(kw))
			}
		}
	}

	readability := int(float64(readabilityWeight) * readabilityScore(r.Readability.Score))

	structure := 0
	if r.Structure.HasTitle {
		structure += structureWeight / 3
	}
	if r.Structure.HeadingCount >= minHeadings {
		structure += structureWeight / 3
	}
	if r.Structure.ParagraphCount >= minParagraphCount && r.Structure.LongParagraphs == 0 {
		structure += structureWeight / 3
	}

	total := keyword + readability + structure
	if total > 100 {
		total = 100
	}
	return total
}

// keywordScore returns 0..1 for one keyword: half for being used at a
// healthy density, half for placement in title or headings.
func keywordScore(kw KeywordStats) float64 {
	score := 0.0
	switch {
	case kw.Density >= minTargetDensity && kw.Density <= maxTargetDensity:
		score += 0.5
	case kw.Count > 0:
		score += 0.25
	}
	if kw.InTitle {
		score += 0.3
	}
	if kw.InHeadings {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}
	return score
}

// readabilityScore maps a Flesch score to 0..1, peaking inside the
// ideal band for marketing copy.
func readabilityScore(flesch float64) float64 {
	switch {
	case flesch >= readabilityIdealLow && flesch <= readabilityIdealHigh:
		return 1
	case flesch < readabilityFloor:
		return 0.25
	case flesch < readabilityIdealLow:
		return 0.5 + 0.5*(flesch-readabilityFloor)/(readabilityIdealLow-readabilityFloor)
	default: // easier than the ideal band still reads fine
		return 0.85
	}
}

func (a *Analyzer) suggestions(r Report) []string {
	var out []string
	if !r.Structure.HasTitle {
		out = append(out, "Add a single H1 title line")
	}
	if r.Structure.HeadingCount < minHeadings {
		out = append(out, fmt.Sprintf("Add section headings (found %d, want at least %d)", r.Structure.HeadingCount, minHeadings))
	}
	if r.Structure.LongParagraphs > 0 {
		out = append(out, fmt.Sprintf("Break up %d long paragraphs (over %d words)", r.Structure.LongParagraphs, maxParagraphWords))
	}
	if r.Readability.Score < readabilityIdealLow && r.Readability.Words > 0 {
		out = append(out, "Shorten sentences and prefer simpler words to improve readability")
	}
	for _, kw := range r.Keywords {
		if kw.Count == 0 {
			out = append(out, fmt.Sprintf("Keyword %q does not appear in the content", kw.Keyword))
		} else if kw.Density > maxTargetDensity {
			out = append(out, fmt.Sprintf("Keyword %q is over-used (%.1f%% density)", kw.Keyword, kw.Density))
		}
	}
	return out
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

func readabilityLevel(score float64) string {
	switch {
	case score >= 90:
		return "very easy"
	case score >= 70:
		return "easy"
	case score >= 50:
		return "standard"
	case score >= 30:
		return "difficult"
	default:
		return "very difficult"
	}
}

// syllableCount estimates syllables by counting vowel groups, with the
// usual silent-e adjustment. Every word counts at least one.
func syllableCount(word string) int {
	word = strings.ToLower(strings.Trim(word, ".,!?;:\"'()"))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func plainWords(content string) []string {
	plain := markdownRe.ReplaceAllString(content, " ")
	fields := wordSplitRe.Split(strings.TrimSpace(plain), -1)
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
