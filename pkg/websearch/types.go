package websearch

// Query describes a single web search.
type Query struct {
	Text       string // Search terms
	NumResults int    // Max results to return (default 10)
	Location   string // Geographic bias, e.g. "United States"
	Language   string // Interface language, e.g. "en"
}

// Result is one search hit.
type Result struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
	Domain   string `json:"domain"`
	Source   string `json:"source"`
}

// Question is a "People Also Ask" entry.
type Question struct {
	Question string `json:"question"`
	Snippet  string `json:"snippet"`
	Link     string `json:"link"`
}

// serpResponse is the subset of the SerpAPI payload we read.
type serpResponse struct {
	OrganicResults   []serpOrganicResult   `json:"organic_results"`
	KnowledgeGraph   *serpKnowledgeGraph   `json:"knowledge_graph"`
	RelatedQuestions []serpRelatedQuestion `json:"related_questions"`
	Error            string                `json:"error"`
}

type serpOrganicResult struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	Snippet       string `json:"snippet"`
	Position      int    `json:"position"`
	DisplayedLink string `json:"displayed_link"`
}

type serpKnowledgeGraph struct {
	Title       string `json:"title"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type serpRelatedQuestion struct {
	Question string `json:"question"`
	Snippet  string `json:"snippet"`
	Link     string `json:"link"`
}

// braveResponse is the subset of the Brave Search payload we read.
type braveResponse struct {
	Web braveWebResults `json:"web"`
}

type braveWebResults struct {
	Results []braveResult `json:"results"`
}

type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
