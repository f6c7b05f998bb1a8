package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/generator"
	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/model"
	"realty-content-engine/internal/quality"
	"realty-content-engine/internal/router"
	"realty-content-engine/internal/session"
	"realty-content-engine/pkg/gemini"
	"realty-content-engine/pkg/llmprovider"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock guardrails usecase with overridable behavior per method.
type mockGuard struct {
	validateInputFunc        func(ctx context.Context, input string, kind model.ValidationKind, contentType model.ContentType) model.GuardrailResult
	validateImageRequestFunc func(ctx context.Context, prompt string) model.GuardrailResult
	inputCalls               int
	imageRequestCalls        int
	lastKind                 model.ValidationKind
}

func (m *mockGuard) ValidateInput(ctx context.Context, input string, kind model.ValidationKind, contentType model.ContentType) model.GuardrailResult {
	m.inputCalls++
	m.lastKind = kind
	if m.validateInputFunc != nil {
		return m.validateInputFunc(ctx, input, kind, contentType)
	}
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) ValidateSafetyOnly(ctx context.Context, input string, kind model.ValidationKind) model.GuardrailResult {
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) ValidateOutput(ctx context.Context, output string, kind model.ValidationKind) model.GuardrailResult {
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) ValidateImageRequest(ctx context.Context, prompt string) model.GuardrailResult {
	m.imageRequestCalls++
	if m.validateImageRequestFunc != nil {
		return m.validateImageRequestFunc(ctx, prompt)
	}
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) Enable(guard model.GuardName) error  { return nil }
func (m *mockGuard) Disable(guard model.GuardName) error { return nil }
func (m *mockGuard) IsEnabled() bool                     { return true }
func (m *mockGuard) Status() guardrails.Status           { return guardrails.Status{} }
func (m *mockGuard) TopicSuggestions() []string          { return nil }

// Mock router returning a canned decision.
type mockRouter struct {
	routeFunc func(ctx context.Context, userInput string, history []model.Message) model.RoutingDecision
}

func (m *mockRouter) Route(ctx context.Context, userInput string, history []model.Message) model.RoutingDecision {
	if m.routeFunc != nil {
		return m.routeFunc(ctx, userInput, history)
	}
	return model.RoutingDecision{
		ContentType:      model.ContentTypeGeneral,
		Confidence:       0.5,
		SuggestedHandler: router.HandlerGeneral,
	}
}

func (m *mockRouter) HandlerFor(contentType model.ContentType) string {
	return router.HandlerGeneral
}

// Stub generator with an overridable Execute.
type stubGenerator struct {
	name        string
	label       string
	executeFunc func(ctx context.Context, in generator.Input) (generator.Output, error)
	calls       int
	lastInput   generator.Input
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Label() string {
	if s.label != "" {
		return s.label
	}
	return s.name
}

func (s *stubGenerator) Execute(ctx context.Context, in generator.Input) (generator.Output, error) {
	s.calls++
	s.lastInput = in
	if s.executeFunc != nil {
		return s.executeFunc(ctx, in)
	}
	return generator.Output{Content: "generated: " + in.UserInput, ContentType: model.ContentTypeGeneral}, nil
}

// In-memory history repository honoring the per-type retention cap.
type memHistoryRepo struct {
	mu        sync.Mutex
	entries   map[int64]model.HistoryEntry
	nextID    int64
	retention int
}

func newMemHistoryRepo(retention int) *memHistoryRepo {
	return &memHistoryRepo{entries: map[int64]model.HistoryEntry{}, retention: retention}
}

func (r *memHistoryRepo) Append(ctx context.Context, entry model.HistoryEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries[entry.ID] = entry

	// Evict oldest overflow for the same type.
	ofType := r.idsOfTypeLocked(entry.ContentType)
	for len(ofType) > r.retention {
		delete(r.entries, ofType[0])
		ofType = ofType[1:]
	}
	return entry.ID, nil
}

func (r *memHistoryRepo) idsOfTypeLocked(t model.ContentType) []int64 {
	var ids []int64
	for id, e := range r.entries {
		if e.ContentType == t {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *memHistoryRepo) List(ctx context.Context, opt repository.ListOptions) ([]model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.HistoryEntry
	for _, e := range r.entries {
		if opt.ContentType != "" && e.ContentType != opt.ContentType {
			continue
		}
		if opt.SessionID != "" && e.SessionID != opt.SessionID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}

func (r *memHistoryRepo) GetByID(ctx context.Context, id int64) (model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return model.HistoryEntry{}, repository.ErrEntryNotFound
	}
	return e, nil
}

func (r *memHistoryRepo) Search(ctx context.Context, opt repository.SearchOptions) ([]model.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.HistoryEntry
	for _, e := range r.entries {
		if opt.ContentType != "" && e.ContentType != opt.ContentType {
			continue
		}
		if !strings.Contains(strings.ToLower(e.Content), strings.ToLower(opt.Term)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}

func (r *memHistoryRepo) Types(ctx context.Context) ([]model.ContentType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[model.ContentType]bool{}
	var out []model.ContentType
	for _, e := range r.entries {
		if !seen[e.ContentType] {
			seen[e.ContentType] = true
			out = append(out, e.ContentType)
		}
	}
	return out, nil
}

func (r *memHistoryRepo) Count(ctx context.Context, contentType model.ContentType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if contentType == "" || e.ContentType == contentType {
			n++
		}
	}
	return n, nil
}

func (r *memHistoryRepo) Delete(ctx context.Context, contentType model.ContentType, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || e.ContentType != contentType {
		return repository.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memHistoryRepo) Clear(ctx context.Context, contentType model.ContentType) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, e := range r.entries {
		if e.ContentType == contentType {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}

func (r *memHistoryRepo) ClearAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.entries))
	r.entries = map[int64]model.HistoryEntry{}
	return n, nil
}

func (r *memHistoryRepo) Stats(ctx context.Context) (model.HistoryStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := model.HistoryStats{
		TotalItems:      len(r.entries),
		ItemsByType:     map[model.ContentType]int{},
		MaxItemsPerType: r.retention,
	}
	for _, e := range r.entries {
		stats.ItemsByType[e.ContentType]++
	}
	return stats, nil
}

func (r *memHistoryRepo) Close() error { return nil }

// Mock vector repository with recorded calls.
type mockVectorRepo struct {
	mu            sync.Mutex
	embedded      []model.HistoryEntry
	deleted       []int64
	searchResults []repository.VectorResult
	searchErr     error
}

func (m *mockVectorRepo) EmbedEntry(ctx context.Context, entry model.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embedded = append(m.embedded, entry)
	return nil
}

func (m *mockVectorRepo) SearchEntries(ctx context.Context, opt repository.VectorSearchOptions) ([]repository.VectorResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func (m *mockVectorRepo) DeleteEntry(ctx context.Context, contentType model.ContentType, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockVectorRepo) deletedIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, len(m.deleted))
	copy(out, m.deleted)
	return out
}

// fakeGemini answers every generation with the same text.
type fakeGemini struct {
	text string
}

func (f *fakeGemini) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	return &gemini.Response{
		Content: gemini.Content{
			Role:  "model",
			Parts: []gemini.Part{{Text: f.text}},
		},
		Usage: &gemini.Usage{},
	}, nil
}

func (f *fakeGemini) Model() string { return "gemini-test" }

func fakeTextManager(text string) *llmprovider.Manager {
	provider := llmprovider.NewGeminiAdapter(&fakeGemini{text: text})
	return llmprovider.NewManager([]llmprovider.Provider{provider},
		&llmprovider.Config{RetryAttempts: 1}, &mockLogger{})
}

// testEnv bundles a usecase with the mocks behind it.
type testEnv struct {
	uc       *implUseCase
	guard    *mockGuard
	router   *mockRouter
	registry *generator.Registry
	sessions *session.Store
	history  *memHistoryRepo
	vector   *mockVectorRepo
}

// newTestEnv builds a usecase on an in-memory stack. Every content type
// is served by a stub generator echoing its input.
func newTestEnv() *testEnv {
	l := &mockLogger{}
	guard := &mockGuard{}
	rt := &mockRouter{}
	sessions := session.New(session.Config{TTL: time.Hour, SweepInterval: time.Hour, HistoryLimit: 10}, l)
	history := newMemHistoryRepo(5)

	registry := generator.NewRegistry(generator.Deps{Logger: l, Guard: guard})
	for _, t := range model.AllContentTypes {
		t := t
		registry.Register(t, &stubGenerator{
			name: string(t) + "_agent",
			executeFunc: func(ctx context.Context, in generator.Input) (generator.Output, error) {
				return generator.Output{Content: "generated: " + in.UserInput, ContentType: t}, nil
			},
		})
	}
	// The direct social-post flow needs the concrete instagram generator,
	// caption-only against a canned LLM. Tests exercising the instagram
	// ROUTE re-register their own stub.
	registry.Register(model.ContentTypeInstagram,
		generator.NewInstagram(fakeTextManager("A great caption.\n\n#a #b #c #d #e #f"), nil, guard, l))

	uc := New(l, guard, rt, registry, sessions, history, nil, quality.New(l), nil, "", nil, "UTC")

	return &testEnv{
		uc:       uc,
		guard:    guard,
		router:   rt,
		registry: registry,
		sessions: sessions,
		history:  history,
	}
}

// withVector attaches a mock vector repository.
func (e *testEnv) withVector(v *mockVectorRepo) *testEnv {
	e.vector = v
	e.uc.vectorRepo = v
	return e
}
