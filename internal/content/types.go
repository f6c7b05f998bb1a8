package content

import (
	"time"

	"realty-content-engine/internal/model"
)

// RunInput is one user request entering the workflow.
type RunInput struct {
	UserInput string                 `json:"user_input"`
	SessionID string                 `json:"session_id,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// GuardrailsInfo reports the guardrail outcome of a run.
type GuardrailsInfo struct {
	Blocked   bool            `json:"blocked"`
	BlockedBy model.GuardName `json:"blocked_by,omitempty"`
}

// RunOutput is the structured result of one workflow run. ContentType is
// a plain string because blocked runs report a pseudo-type rather than a
// routable one.
type RunOutput struct {
	Success     bool                   `json:"success"`
	Content     string                 `json:"content,omitempty"`
	ContentType string                 `json:"content_type,omitempty"`
	Error       string                 `json:"error,omitempty"`
	SessionID   string                 `json:"session_id"`
	Guardrails  GuardrailsInfo         `json:"guardrails"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ResearchInput requests research-grounded content generation.
type ResearchInput struct {
	Topic       string            `json:"topic"`
	ContentType model.ContentType `json:"content_type"`
	SessionID   string            `json:"session_id,omitempty"`
}

// ResearchOutput carries both phases of the composite flow. Research is
// empty when the research phase itself failed.
type ResearchOutput struct {
	Success    bool           `json:"success"`
	Research   string         `json:"research,omitempty"`
	Content    string         `json:"content,omitempty"`
	Error      string         `json:"error,omitempty"`
	SessionID  string         `json:"session_id"`
	Guardrails GuardrailsInfo `json:"guardrails"`
}

// InstagramPostInput is a direct social-post request.
type InstagramPostInput struct {
	ImageDescription string                 `json:"image_description"`
	PropertyDetails  map[string]interface{} `json:"property_details,omitempty"`
	SessionID        string                 `json:"session_id,omitempty"`
}

// InstagramPostOutput carries the assembled post and its parts.
type InstagramPostOutput struct {
	Success    bool           `json:"success"`
	Image      string         `json:"image,omitempty"`
	Caption    string         `json:"caption,omitempty"`
	Hashtags   string         `json:"hashtags,omitempty"`
	FullPost   string         `json:"full_post,omitempty"`
	Error      string         `json:"error,omitempty"`
	SessionID  string         `json:"session_id"`
	Guardrails GuardrailsInfo `json:"guardrails"`
}

// ScheduleInput books a publishing slot for a history entry.
type ScheduleInput struct {
	EntryID int64  `json:"entry_id"`
	Slot    string `json:"slot"`            // natural phrase: "tomorrow", "next monday", "in 2 weeks"
	Title   string `json:"title,omitempty"` // optional override for the event title
}

// ScheduleOutput describes the created calendar event.
type ScheduleOutput struct {
	EventID     string            `json:"event_id"`
	EventLink   string            `json:"event_link,omitempty"`
	Title       string            `json:"title"`
	ScheduledAt time.Time         `json:"scheduled_at"`
	ContentType model.ContentType `json:"content_type"`
}

// HistoryListInput filters the history listing.
type HistoryListInput struct {
	ContentType model.ContentType `json:"content_type,omitempty"`
	SessionID   string            `json:"session_id,omitempty"`
	Limit       int               `json:"limit,omitempty"`
}

// SearchInput queries stored content, semantically when the vector index
// is configured, by substring otherwise.
type SearchInput struct {
	Query       string            `json:"query"`
	ContentType model.ContentType `json:"content_type,omitempty"`
	Limit       int               `json:"limit,omitempty"`
}

// SearchResult is one history entry with its relevance score. Score is
// zero for substring fallback results.
type SearchResult struct {
	Entry model.HistoryEntry `json:"entry"`
	Score float64            `json:"score,omitempty"`
}

// SearchOutput carries ranked search results.
type SearchOutput struct {
	Results  []SearchResult `json:"results"`
	Semantic bool           `json:"semantic"` // true when served by the vector index
}

// ExportOutput is one history entry rendered in an export format.
type ExportOutput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"` // MIME type of Body
	Body        []byte `json:"-"`
}
