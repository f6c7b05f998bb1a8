package guardrails

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// Lexicon holds the curated keyword sets behind the deterministic checks,
// plus the matchers compiled from them. All matching is case-insensitive
// and word-boundary anchored; the obfuscation patterns are the exception
// since disguised profanity rarely sits on clean boundaries.
type Lexicon struct {
	ProfanityWords          []string `yaml:"profanity_words"`
	SafeWords               []string `yaml:"safe_words"`
	InappropriateCategories []string `yaml:"inappropriate_categories"`
	ImageInappropriate      []string `yaml:"image_inappropriate"`
	HighSeverityTerms       []string `yaml:"high_severity_terms"`
	RealEstateKeywords      []string `yaml:"real_estate_keywords"`
	OffTopicIndicators      []string `yaml:"off_topic_indicators"`

	profanityPattern     *regexp.Regexp
	inappropriatePattern *regexp.Regexp
	imagePattern         *regexp.Regexp
	realEstatePattern    *regexp.Regexp
	offTopicPattern      *regexp.Regexp
	safeWordSet          map[string]struct{}
	leetPatterns         []leetPattern
}

type leetPattern struct {
	re        *regexp.Regexp
	canonical string
}

// Character-substitution disguises mapped back to the word they hide.
var leetSubstitutions = []struct {
	expr string
	word string
}{
	{`f[u*@0]ck`, "fuck"},
	{`sh[i*1]t`, "shit"},
	{`b[i*1]tch`, "bitch"},
	{`a[s$]s`, "ass"},
	{`d[i*1]ck`, "dick"},
	{`c[u*]nt`, "cunt"},
}

// LoadLexicon parses the embedded keyword sets and compiles the matchers.
func LoadLexicon() (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(lexiconYAML, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.compile(); err != nil {
		return nil, err
	}
	return &lex, nil
}

func (lex *Lexicon) compile() error {
	sets := []struct {
		name  string
		words []string
	}{
		{"profanity_words", lex.ProfanityWords},
		{"inappropriate_categories", lex.InappropriateCategories},
		{"image_inappropriate", lex.ImageInappropriate},
		{"real_estate_keywords", lex.RealEstateKeywords},
		{"off_topic_indicators", lex.OffTopicIndicators},
	}
	for _, set := range sets {
		if len(set.words) == 0 {
			return fmt.Errorf("lexicon set %s is empty", set.name)
		}
	}

	var err error
	if lex.profanityPattern, err = wordSetPattern(lex.ProfanityWords); err != nil {
		return fmt.Errorf("compile profanity pattern: %w", err)
	}
	if lex.inappropriatePattern, err = wordSetPattern(lex.InappropriateCategories); err != nil {
		return fmt.Errorf("compile inappropriate pattern: %w", err)
	}
	if lex.imagePattern, err = wordSetPattern(lex.ImageInappropriate); err != nil {
		return fmt.Errorf("compile image pattern: %w", err)
	}
	if lex.realEstatePattern, err = wordSetPattern(lex.RealEstateKeywords); err != nil {
		return fmt.Errorf("compile real estate pattern: %w", err)
	}
	if lex.offTopicPattern, err = wordSetPattern(lex.OffTopicIndicators); err != nil {
		return fmt.Errorf("compile off-topic pattern: %w", err)
	}

	lex.safeWordSet = make(map[string]struct{}, len(lex.SafeWords))
	for _, w := range lex.SafeWords {
		lex.safeWordSet[strings.ToLower(w)] = struct{}{}
	}

	lex.leetPatterns = make([]leetPattern, 0, len(leetSubstitutions))
	for _, sub := range leetSubstitutions {
		re, err := regexp.Compile(sub.expr)
		if err != nil {
			return fmt.Errorf("compile obfuscation pattern %q: %w", sub.expr, err)
		}
		lex.leetPatterns = append(lex.leetPatterns, leetPattern{re: re, canonical: sub.word})
	}

	return nil
}

// isSafeWord reports whether the token is on the false-positive allowlist.
func (lex *Lexicon) isSafeWord(token string) bool {
	_, ok := lex.safeWordSet[token]
	return ok
}

// wordSetPattern builds a single case-insensitive alternation over the
// given words, anchored on word boundaries so multi-word phrases and
// hyphenated terms match whole tokens only. Alternation order follows
// list order.
func wordSetPattern(words []string) (*regexp.Regexp, error) {
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return regexp.Compile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
}

// matchDistinct returns the distinct matches of re in text, in first-seen
// order. Matching is non-overlapping, so "real estate blog" counts once
// even though "real estate" and "real estate blog" are both listed.
func matchDistinct(re *regexp.Regexp, text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range re.FindAllString(text, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// containingToken expands an obfuscation match to the full token around
// it, so "class" can be recognized as an allowlisted word rather than a
// disguised "ass". Substitution symbols count as token characters.
func containingToken(text string, start, end int) string {
	for start > 0 && isTokenChar(text[start-1]) {
		start--
	}
	for end < len(text) && isTokenChar(text[end]) {
		end++
	}
	return text[start:end]
}

func isTokenChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '*' || b == '@' || b == '$':
		return true
	}
	return false
}
