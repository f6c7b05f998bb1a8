package content

import (
	"context"

	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/model"
)

// UseCase defines the business logic interface for the content domain:
// the request workflow, the composite flows built on top of it, and the
// session, history, and guardrail management surfaces.
type UseCase interface {
	// Run executes the full workflow for one user request: session,
	// guardrails, routing, generation, storage. Failures never escape;
	// they come back inside the output.
	Run(ctx context.Context, input RunInput) RunOutput

	// RunWithResearch first researches the topic, then generates the
	// requested content type grounded on the findings, in one session.
	RunWithResearch(ctx context.Context, input ResearchInput) ResearchOutput

	// GenerateInstagramPost builds a social post directly from an image
	// description and property details, skipping the router.
	GenerateInstagramPost(ctx context.Context, input InstagramPostInput) (InstagramPostOutput, error)

	// Schedule books a publishing slot for a stored piece of content in
	// Google Calendar, resolving natural slot phrases like "next monday".
	Schedule(ctx context.Context, input ScheduleInput) (ScheduleOutput, error)

	// History surface.
	ListHistory(ctx context.Context, input HistoryListInput) ([]model.HistoryEntry, error)
	GetHistoryEntry(ctx context.Context, id int64) (model.HistoryEntry, error)
	SearchHistory(ctx context.Context, input SearchInput) (SearchOutput, error)
	HistoryStats(ctx context.Context) (model.HistoryStats, error)
	DeleteHistoryEntry(ctx context.Context, contentType model.ContentType, id int64) error
	ClearHistory(ctx context.Context, contentType model.ContentType) (int64, error)
	ExportHistoryEntry(ctx context.Context, id int64, format string) (ExportOutput, error)

	// Session surface.
	GetSession(id string) (model.Session, bool)
	ListSessions() []string
	ClearSession(id string) bool
	DeleteSession(id string) bool
	ExportSession(id string) ([]byte, error)
	ImportSession(data []byte) (model.Session, error)

	// Guardrail management surface.
	GuardrailsStatus() guardrails.Status
	SetGuardrail(guard model.GuardName, enabled bool) error
	TopicSuggestions() []string
}
