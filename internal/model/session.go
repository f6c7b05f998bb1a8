package model

import "time"

// MessageRole identifies who authored a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single entry in a conversation transcript.
type Message struct {
	Role      MessageRole            `json:"role"`
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// GeneratedItem is one piece of content produced within a session.
type GeneratedItem struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session holds the full state of one conversation: the append-only
// transcript, the last-write-wins context map, and everything generated
// so far grouped by content type.
type Session struct {
	ID               string                            `json:"session_id"`
	Messages         []Message                         `json:"messages"`
	Context          map[string]interface{}            `json:"context"`
	CurrentHandler   string                            `json:"current_handler,omitempty"`
	GeneratedContent map[ContentType][]GeneratedItem   `json:"generated_content"`
	CreatedAt        time.Time                         `json:"created_at"`
	UpdatedAt        time.Time                         `json:"updated_at"`
}

// History returns the most recent messages as role/content pairs.
// A limit of 0 returns the whole transcript.
func (s *Session) History(limit int) []Message {
	if limit <= 0 || limit >= len(s.Messages) {
		out := make([]Message, len(s.Messages))
		copy(out, s.Messages)
		return out
	}
	out := make([]Message, limit)
	copy(out, s.Messages[len(s.Messages)-limit:])
	return out
}

// LatestContent returns the newest generated item of the given type,
// or false when the session has produced none.
func (s *Session) LatestContent(t ContentType) (GeneratedItem, bool) {
	items := s.GeneratedContent[t]
	if len(items) == 0 {
		return GeneratedItem{}, false
	}
	return items[len(items)-1], true
}
