package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// SerpAPI is a search provider backed by serpapi.com.
type SerpAPI struct {
	apiKey     string
	baseURL    string
	engine     string
	httpClient *http.Client
}

// NewSerpAPI creates a SerpAPI provider with default settings.
func NewSerpAPI(apiKey string) *SerpAPI {
	return &SerpAPI{
		apiKey:  apiKey,
		baseURL: DefaultSerpBaseURL,
		engine:  DefaultEngine,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithBaseURL overrides the API endpoint.
func (s *SerpAPI) WithBaseURL(baseURL string) *SerpAPI {
	s.baseURL = baseURL
	return s
}

// WithEngine overrides the search engine parameter.
func (s *SerpAPI) WithEngine(engine string) *SerpAPI {
	s.engine = engine
	return s
}

// WithHTTPClient overrides the HTTP client.
func (s *SerpAPI) WithHTTPClient(client *http.Client) *SerpAPI {
	s.httpClient = client
	return s
}

// Name returns the provider name.
func (s *SerpAPI) Name() string {
	return "serpapi"
}

// Search runs a web search. Organic results keep their engine ranking;
// a knowledge graph panel, when present, is prepended as position 0.
func (s *SerpAPI) Search(ctx context.Context, q Query) ([]Result, error) {
	data, err := s.call(ctx, q)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(data.OrganicResults)+1)
	if data.KnowledgeGraph != nil && data.KnowledgeGraph.Title != "" {
		results = append(results, Result{
			Title:   data.KnowledgeGraph.Title,
			URL:     data.KnowledgeGraph.Website,
			Snippet: data.KnowledgeGraph.Description,
			Domain:  "Knowledge Graph",
			Source:  "knowledge_graph",
		})
	}
	for _, r := range data.OrganicResults {
		results = append(results, Result{
			Title:    r.Title,
			URL:      r.Link,
			Snippet:  r.Snippet,
			Position: r.Position,
			Domain:   r.DisplayedLink,
			Source:   s.engine,
		})
	}

	return results, nil
}

// RelatedQuestions returns the "People Also Ask" entries for a query.
func (s *SerpAPI) RelatedQuestions(ctx context.Context, query string) ([]Question, error) {
	data, err := s.call(ctx, Query{Text: query})
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(data.RelatedQuestions))
	for _, q := range data.RelatedQuestions {
		questions = append(questions, Question{
			Question: q.Question,
			Snippet:  q.Snippet,
			Link:     q.Link,
		})
	}

	return questions, nil
}

func (s *SerpAPI) call(ctx context.Context, q Query) (*serpResponse, error) {
	if q.Text == "" {
		return nil, fmt.Errorf("serpapi: query is empty")
	}

	num := q.NumResults
	if num <= 0 {
		num = DefaultNumResults
	}
	location := q.Location
	if location == "" {
		location = DefaultLocation
	}
	language := q.Language
	if language == "" {
		language = DefaultLanguage
	}

	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("q", q.Text)
	params.Set("num", strconv.Itoa(num))
	params.Set("location", location)
	params.Set("hl", language)
	params.Set("engine", s.engine)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi: API error %d: %s", resp.StatusCode, string(body))
	}

	var data serpResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("serpapi: failed to parse response: %w", err)
	}
	if data.Error != "" {
		return nil, fmt.Errorf("serpapi: API error: %s", data.Error)
	}

	return &data, nil
}
