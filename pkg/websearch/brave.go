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

// Brave is a search provider backed by the Brave Search API.
type Brave struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewBrave creates a Brave Search provider with default settings.
func NewBrave(apiKey string) *Brave {
	return &Brave{
		apiKey:  apiKey,
		baseURL: DefaultBraveBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// WithBaseURL overrides the API endpoint.
func (b *Brave) WithBaseURL(baseURL string) *Brave {
	b.baseURL = baseURL
	return b
}

// WithHTTPClient overrides the HTTP client.
func (b *Brave) WithHTTPClient(client *http.Client) *Brave {
	b.httpClient = client
	return b
}

// Name returns the provider name.
func (b *Brave) Name() string {
	return "brave"
}

// Search runs a web search against the Brave web search endpoint.
func (b *Brave) Search(ctx context.Context, q Query) ([]Result, error) {
	if q.Text == "" {
		return nil, fmt.Errorf("brave: query is empty")
	}

	num := q.NumResults
	if num <= 0 {
		num = DefaultNumResults
	}

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("count", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("brave: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("brave: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave: API error %d: %s", resp.StatusCode, string(body))
	}

	var data braveResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("brave: failed to parse response: %w", err)
	}

	results := make([]Result, 0, len(data.Web.Results))
	for i, r := range data.Web.Results {
		u, err := url.Parse(r.URL)
		domain := ""
		if err == nil {
			domain = u.Host
		}
		results = append(results, Result{
			Title:    r.Title,
			URL:      r.URL,
			Snippet:  r.Description,
			Position: i + 1,
			Domain:   domain,
			Source:   "brave",
		})
	}

	return results, nil
}

// RelatedQuestions is not supported by the Brave Search API.
func (b *Brave) RelatedQuestions(ctx context.Context, query string) ([]Question, error) {
	return []Question{}, nil
}
