package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"realty-content-engine/internal/model"
)

// GetOrCreate returns a copy of the session with the given id, creating
// it first when absent. An empty id creates a fresh session under a new
// uuid. initialContext seeds the context map of new sessions only.
func (s *Store) GetOrCreate(id string, initialContext map[string]interface{}) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return cloneSession(sess)
		}
	}
	return cloneSession(s.createLocked(id, initialContext))
}

// Get returns a copy of the session, or false when no session has that id.
func (s *Store) Get(id string) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, false
	}
	return cloneSession(sess), true
}

// AddMessage appends a message to the session transcript.
func (s *Store) AddMessage(id string, role model.MessageRole, content string, metadata map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	sess.Messages = append(sess.Messages, model.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata,
	})
	sess.UpdatedAt = time.Now()
	return nil
}

// SetContext sets one context key. Last write wins.
func (s *Store) SetContext(id, key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Context[key] = value
	sess.UpdatedAt = time.Now()
	return nil
}

// SetCurrentHandler records which handler is serving the session.
func (s *Store) SetCurrentHandler(id, handler string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.CurrentHandler = handler
	sess.UpdatedAt = time.Now()
	return nil
}

// AddGeneratedContent appends one generated item under the content type.
func (s *Store) AddGeneratedContent(id string, contentType model.ContentType, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.GeneratedContent[contentType] = append(sess.GeneratedContent[contentType], model.GeneratedItem{
		Content:   content,
		Timestamp: time.Now(),
	})
	sess.UpdatedAt = time.Now()
	return nil
}

// History returns a copy of the most recent messages, capped at the
// configured history limit.
func (s *Store) History(id string) []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	return sess.History(s.historyLimit)
}

// ClearHistory drops the session transcript, keeping context and
// generated content. Returns false when no session has that id.
func (s *Store) ClearHistory(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Messages = nil
	sess.UpdatedAt = time.Now()
	return true
}

// Reset drops the transcript and context, keeping the session and its
// generated content. Returns false when no session has that id.
func (s *Store) Reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	sess.Messages = nil
	sess.Context = map[string]interface{}{}
	sess.CurrentHandler = ""
	sess.UpdatedAt = time.Now()
	return true
}

// Delete removes the session. Returns false when no session has that id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// List returns all session ids.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of active sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictOlderThan removes sessions last touched before cutoff and
// returns how many were removed.
func (s *Store) EvictOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Export serializes one session to JSON.
func (s *Store) Export(id string) ([]byte, error) {
	sess, ok := s.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return json.Marshal(sess)
}

// Import restores a session from its JSON export and registers it under
// its own id, minting one when the export carries none. Message
// timestamps survive the round trip; the session clock restarts so an
// imported session is not immediately swept.
func (s *Store) Import(data []byte) (model.Session, error) {
	var sess model.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return model.Session{}, fmt.Errorf("decode session: %w", err)
	}

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Context == nil {
		sess.Context = map[string]interface{}{}
	}
	if sess.GeneratedContent == nil {
		sess.GeneratedContent = map[model.ContentType][]model.GeneratedItem{}
	}
	now := time.Now()
	sess.CreatedAt = now
	sess.UpdatedAt = now

	s.mu.Lock()
	s.sessions[sess.ID] = &sess
	s.mu.Unlock()

	return cloneSession(&sess), nil
}

func (s *Store) createLocked(id string, initialContext map[string]interface{}) *model.Session {
	if id == "" {
		id = uuid.NewString()
	}

	ctx := make(map[string]interface{}, len(initialContext))
	for k, v := range initialContext {
		ctx[k] = v
	}

	now := time.Now()
	sess := &model.Session{
		ID:               id,
		Messages:         []model.Message{},
		Context:          ctx,
		GeneratedContent: map[model.ContentType][]model.GeneratedItem{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.sessions[id] = sess
	return sess
}

func cloneSession(sess *model.Session) model.Session {
	out := *sess

	out.Messages = make([]model.Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)

	out.Context = make(map[string]interface{}, len(sess.Context))
	for k, v := range sess.Context {
		out.Context[k] = v
	}

	out.GeneratedContent = make(map[model.ContentType][]model.GeneratedItem, len(sess.GeneratedContent))
	for t, items := range sess.GeneratedContent {
		copied := make([]model.GeneratedItem, len(items))
		copy(copied, items)
		out.GeneratedContent[t] = copied
	}

	return out
}
