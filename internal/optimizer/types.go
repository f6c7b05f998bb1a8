package optimizer

// KeywordStats describes how one target keyword is used in the content.
type KeywordStats struct {
	Keyword    string  `json:"keyword"`
	Count      int     `json:"count"`
	Density    float64 `json:"density"` // percent of total words
	InTitle    bool    `json:"in_title"`
	InHeadings bool    `json:"in_headings"`
}

// ReadabilityReport carries the Flesch reading-ease result.
type ReadabilityReport struct {
	Score     float64 `json:"score"` // 0 (dense) .. 100 (very easy)
	Level     string  `json:"level"`
	Sentences int     `json:"sentences"`
	Words     int     `json:"words"`
	Syllables int     `json:"syllables"`
}

// StructureReport summarizes the markdown structure of the content.
type StructureReport struct {
	HasTitle       bool `json:"has_title"`
	HeadingCount   int  `json:"heading_count"`
	ParagraphCount int  `json:"paragraph_count"`
	ListItems      int  `json:"list_items"`
	LongParagraphs int  `json:"long_paragraphs"` // paragraphs over the word target
}

// Report is the full SEO analysis of one piece of content.
type Report struct {
	Keywords    []KeywordStats    `json:"keywords"`
	Readability ReadabilityReport `json:"readability"`
	Structure   StructureReport   `json:"structure"`
	SEOScore    int               `json:"seo_score"` // 0..100
	Grade       string            `json:"grade"`     // A..F
	Suggestions []string          `json:"suggestions,omitempty"`
}
