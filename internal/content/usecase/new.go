package usecase

import (
	"realty-content-engine/internal/content"
	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/generator"
	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/optimizer"
	"realty-content-engine/internal/quality"
	"realty-content-engine/internal/router"
	"realty-content-engine/internal/session"
	"realty-content-engine/pkg/datemath"
	"realty-content-engine/pkg/gcalendar"
	pkgLog "realty-content-engine/pkg/log"
)

type implUseCase struct {
	l          pkgLog.Logger
	guard      guardrails.UseCase
	router     router.Router
	registry   *generator.Registry
	sessions   *session.Store
	history    repository.HistoryRepository
	vectorRepo repository.VectorRepository
	quality    *quality.Validator
	optimizer  *optimizer.Analyzer
	calendar   *gcalendar.Client
	calendarID string
	dateMath   *datemath.Parser
	timezone   string
}

// New creates a new content UseCase instance. vectorRepo and calendar
// may be nil; the flows that need them degrade or report unavailability.
func New(
	l pkgLog.Logger,
	guard guardrails.UseCase,
	rt router.Router,
	registry *generator.Registry,
	sessions *session.Store,
	history repository.HistoryRepository,
	vectorRepo repository.VectorRepository,
	validator *quality.Validator,
	calendar *gcalendar.Client,
	calendarID string,
	dateMath *datemath.Parser,
	timezone string,
) *implUseCase {
	return &implUseCase{
		l:          l,
		guard:      guard,
		router:     rt,
		registry:   registry,
		sessions:   sessions,
		history:    history,
		vectorRepo: vectorRepo,
		quality:    validator,
		optimizer:  optimizer.New(l),
		calendar:   calendar,
		calendarID: calendarID,
		dateMath:   dateMath,
		timezone:   timezone,
	}
}

var _ content.UseCase = (*implUseCase)(nil)
