package usecase

import (
	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/model"
)

// GetSession returns a copy of one conversation.
func (uc *implUseCase) GetSession(id string) (model.Session, bool) {
	return uc.sessions.Get(id)
}

// ListSessions returns all active session ids.
func (uc *implUseCase) ListSessions() []string {
	return uc.sessions.List()
}

// ClearSession drops the transcript and context, keeping the session.
func (uc *implUseCase) ClearSession(id string) bool {
	return uc.sessions.Reset(id)
}

// DeleteSession removes the session entirely.
func (uc *implUseCase) DeleteSession(id string) bool {
	return uc.sessions.Delete(id)
}

// ExportSession serializes one session to JSON.
func (uc *implUseCase) ExportSession(id string) ([]byte, error) {
	return uc.sessions.Export(id)
}

// ImportSession restores a session from its JSON export.
func (uc *implUseCase) ImportSession(data []byte) (model.Session, error) {
	return uc.sessions.Import(data)
}

// GuardrailsStatus reports the current guardrail configuration.
func (uc *implUseCase) GuardrailsStatus() guardrails.Status {
	return uc.guard.Status()
}

// SetGuardrail enables or disables one guard at runtime.
func (uc *implUseCase) SetGuardrail(guard model.GuardName, enabled bool) error {
	if enabled {
		return uc.guard.Enable(guard)
	}
	return uc.guard.Disable(guard)
}

// TopicSuggestions lists on-topic request examples for blocked users.
func (uc *implUseCase) TopicSuggestions() []string {
	return uc.guard.TopicSuggestions()
}
