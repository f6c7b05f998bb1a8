package http

import (
	"strings"
	"time"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/model"
	"realty-content-engine/pkg/response"
)

// --- Request DTOs ---

type runReq struct {
	UserInput string                 `json:"user_input" binding:"required,min=1,max=4000"`
	SessionID string                 `json:"session_id" binding:"omitempty,max=128"`
	Context   map[string]interface{} `json:"context"`
}

func (r runReq) validate() error {
	if strings.TrimSpace(r.UserInput) == "" {
		return content.ErrEmptyInput
	}
	return nil
}

func (r runReq) toInput() content.RunInput {
	return content.RunInput{
		UserInput: strings.TrimSpace(r.UserInput),
		SessionID: r.SessionID,
		Context:   r.Context,
	}
}

// ---

type researchReq struct {
	Topic       string `json:"topic"        binding:"required,min=1,max=500"`
	ContentType string `json:"content_type" binding:"required,oneof=blog linkedin strategy"`
	SessionID   string `json:"session_id"   binding:"omitempty,max=128"`
}

func (r researchReq) validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return content.ErrEmptyTopic
	}
	return nil
}

func (r researchReq) toInput() content.ResearchInput {
	return content.ResearchInput{
		Topic:       strings.TrimSpace(r.Topic),
		ContentType: model.ContentType(r.ContentType),
		SessionID:   r.SessionID,
	}
}

// ---

type instagramPostReq struct {
	ImageDescription string                 `json:"image_description" binding:"required,min=1,max=2000"`
	PropertyDetails  map[string]interface{} `json:"property_details"`
	SessionID        string                 `json:"session_id" binding:"omitempty,max=128"`
}

func (r instagramPostReq) validate() error {
	if strings.TrimSpace(r.ImageDescription) == "" {
		return content.ErrEmptyImageDesc
	}
	return nil
}

func (r instagramPostReq) toInput() content.InstagramPostInput {
	return content.InstagramPostInput{
		ImageDescription: strings.TrimSpace(r.ImageDescription),
		PropertyDetails:  r.PropertyDetails,
		SessionID:        r.SessionID,
	}
}

// ---

type scheduleReq struct {
	EntryID int64  `json:"entry_id" binding:"required,min=1"`
	Slot    string `json:"slot"     binding:"required,min=1,max=100"`
	Title   string `json:"title"    binding:"omitempty,max=255"`
}

func (r scheduleReq) validate() error {
	if strings.TrimSpace(r.Slot) == "" {
		return content.ErrEmptySlot
	}
	return nil
}

func (r scheduleReq) toInput() content.ScheduleInput {
	return content.ScheduleInput{
		EntryID: r.EntryID,
		Slot:    strings.TrimSpace(r.Slot),
		Title:   strings.TrimSpace(r.Title),
	}
}

// ---

type historyListReq struct {
	Type      string `form:"type"`
	SessionID string `form:"session_id"`
	Limit     int    `form:"limit"`
}

func (r historyListReq) validate() error { return nil }

func (r historyListReq) toInput() content.HistoryListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 0 // use-case default
	}
	return content.HistoryListInput{
		ContentType: model.ContentType(r.Type),
		SessionID:   r.SessionID,
		Limit:       limit,
	}
}

// ---

type searchReq struct {
	Query string `form:"q"`
	Type  string `form:"type"`
	Limit int    `form:"limit"`
}

func (r searchReq) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return content.ErrEmptyQuery
	}
	return nil
}

func (r searchReq) toInput() content.SearchInput {
	limit := r.Limit
	if limit <= 0 || limit > 50 {
		limit = 0
	}
	return content.SearchInput{
		Query:       strings.TrimSpace(r.Query),
		ContentType: model.ContentType(r.Type),
		Limit:       limit,
	}
}

// ---

type setGuardrailReq struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (r setGuardrailReq) validate() error { return nil }

// --- Response DTOs ---

type runResp struct {
	Success     bool                   `json:"success"`
	Content     string                 `json:"content,omitempty"`
	ContentType string                 `json:"content_type,omitempty"`
	Error       string                 `json:"error,omitempty"`
	SessionID   string                 `json:"session_id"`
	Guardrails  content.GuardrailsInfo `json:"guardrails"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func newRunResp(out content.RunOutput) runResp {
	return runResp{
		Success:     out.Success,
		Content:     out.Content,
		ContentType: out.ContentType,
		Error:       out.Error,
		SessionID:   out.SessionID,
		Guardrails:  out.Guardrails,
		Metadata:    out.Metadata,
	}
}

type researchResp struct {
	Success    bool                   `json:"success"`
	Research   string                 `json:"research,omitempty"`
	Content    string                 `json:"content,omitempty"`
	Error      string                 `json:"error,omitempty"`
	SessionID  string                 `json:"session_id"`
	Guardrails content.GuardrailsInfo `json:"guardrails"`
}

func newResearchResp(out content.ResearchOutput) researchResp {
	return researchResp{
		Success:    out.Success,
		Research:   out.Research,
		Content:    out.Content,
		Error:      out.Error,
		SessionID:  out.SessionID,
		Guardrails: out.Guardrails,
	}
}

type instagramPostResp struct {
	Success    bool                   `json:"success"`
	Image      string                 `json:"image,omitempty"`
	Caption    string                 `json:"caption,omitempty"`
	Hashtags   string                 `json:"hashtags,omitempty"`
	FullPost   string                 `json:"full_post,omitempty"`
	Error      string                 `json:"error,omitempty"`
	SessionID  string                 `json:"session_id"`
	Guardrails content.GuardrailsInfo `json:"guardrails"`
}

func newInstagramPostResp(out content.InstagramPostOutput) instagramPostResp {
	return instagramPostResp{
		Success:    out.Success,
		Image:      out.Image,
		Caption:    out.Caption,
		Hashtags:   out.Hashtags,
		FullPost:   out.FullPost,
		Error:      out.Error,
		SessionID:  out.SessionID,
		Guardrails: out.Guardrails,
	}
}

type scheduleResp struct {
	EventID     string            `json:"event_id"`
	EventLink   string            `json:"event_link,omitempty"`
	Title       string            `json:"title"`
	ScheduledAt response.DateTime `json:"scheduled_at"`
	ContentType string            `json:"content_type"`
}

func newScheduleResp(out content.ScheduleOutput) scheduleResp {
	return scheduleResp{
		EventID:     out.EventID,
		EventLink:   out.EventLink,
		Title:       out.Title,
		ScheduledAt: response.DateTime(out.ScheduledAt),
		ContentType: out.ContentType.String(),
	}
}

type historyEntryResp struct {
	ID          int64                  `json:"id"`
	SessionID   string                 `json:"session_id"`
	ContentType string                 `json:"content_type"`
	Content     string                 `json:"content"`
	Prompt      string                 `json:"prompt,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func newHistoryEntryResp(entry model.HistoryEntry) historyEntryResp {
	return historyEntryResp{
		ID:          entry.ID,
		SessionID:   entry.SessionID,
		ContentType: entry.ContentType.String(),
		Content:     entry.Content,
		Prompt:      entry.Prompt,
		Metadata:    entry.Metadata,
		CreatedAt:   entry.CreatedAt,
	}
}

type historyListResp struct {
	Entries []historyEntryResp `json:"entries"`
	Total   int                `json:"total"`
}

func newHistoryListResp(entries []model.HistoryEntry) historyListResp {
	out := make([]historyEntryResp, len(entries))
	for i, e := range entries {
		out[i] = newHistoryEntryResp(e)
	}
	return historyListResp{Entries: out, Total: len(out)}
}

type searchResultResp struct {
	Entry historyEntryResp `json:"entry"`
	Score float64          `json:"score,omitempty"`
}

type searchResp struct {
	Results  []searchResultResp `json:"results"`
	Total    int                `json:"total"`
	Semantic bool               `json:"semantic"`
}

func newSearchResp(out content.SearchOutput) searchResp {
	results := make([]searchResultResp, len(out.Results))
	for i, r := range out.Results {
		results[i] = searchResultResp{
			Entry: newHistoryEntryResp(r.Entry),
			Score: r.Score,
		}
	}
	return searchResp{Results: results, Total: len(results), Semantic: out.Semantic}
}

type clearHistoryResp struct {
	Deleted int64 `json:"deleted"`
}

type sessionResp struct {
	ID              string                 `json:"session_id"`
	Messages        []model.Message        `json:"messages"`
	Context         map[string]interface{} `json:"context,omitempty"`
	CurrentHandler  string                 `json:"current_handler,omitempty"`
	GeneratedCounts map[string]int         `json:"generated_counts,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func newSessionResp(sess model.Session) sessionResp {
	counts := make(map[string]int, len(sess.GeneratedContent))
	for t, items := range sess.GeneratedContent {
		counts[t.String()] = len(items)
	}
	return sessionResp{
		ID:              sess.ID,
		Messages:        sess.Messages,
		Context:         sess.Context,
		CurrentHandler:  sess.CurrentHandler,
		GeneratedCounts: counts,
		CreatedAt:       sess.CreatedAt,
		UpdatedAt:       sess.UpdatedAt,
	}
}

type sessionListResp struct {
	Sessions []string `json:"sessions"`
	Total    int      `json:"total"`
}

type suggestionsResp struct {
	Suggestions []string `json:"suggestions"`
}
