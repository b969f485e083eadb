package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/memory"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadConverted(ctx context.Context, payload queue.LeadConvertedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type metricsSpy struct {
	mu          sync.Mutex
	saves       []string
	conversions int
}

func (m *metricsSpy) RecordLeadSave(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, outcome)
}

func (m *metricsSpy) RecordConversion() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversions++
}

func (m *metricsSpy) Saves() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.saves...)
}

type staticSource []entity.Lead

func (s staticSource) Leads(context.Context) ([]entity.Lead, error) {
	out := make([]entity.Lead, len(s))
	copy(out, s)
	return out, nil
}

func fixtureLeads() []entity.Lead {
	return []entity.Lead{
		{ID: 1, Name: "Ana", Company: "Acme", Email: "ana@acme.com", Source: "Website", Score: 10, Status: entity.StatusNovo},
		{ID: 2, Name: "Bo", Company: "Zeta", Email: "bo@zeta.com", Source: "Indicação", Score: 90, Status: entity.StatusNovo},
		{ID: 3, Name: "Carla", Company: "Horizonte", Email: "carla@horizonte.med.br", Source: "Evento", Score: 50, Status: entity.StatusQualificado},
	}
}

type testEnv struct {
	ws      *usecase.LeadWorkspace
	leads   *memory.LeadStore
	opps    *memory.OpportunityStore
	prefs   *memory.PreferenceStore
	events  *MockEventPublisher
	metrics *metricsSpy

	mu     sync.Mutex
	onWait func(d time.Duration)
	waits  []time.Duration
}

// setOnWait registra um gancho chamado dentro da latência simulada.
func (e *testEnv) setOnWait(fn func(d time.Duration)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onWait = fn
}

func (e *testEnv) wait(d time.Duration) {
	e.mu.Lock()
	e.waits = append(e.waits, d)
	hook := e.onWait
	e.mu.Unlock()
	if hook != nil {
		hook(d)
	}
}

func newTestEnv(t *testing.T, mutate func(*usecase.WorkspaceDeps)) *testEnv {
	t.Helper()
	env := &testEnv{
		leads:   memory.NewLeadStore(),
		opps:    memory.NewOpportunityStore(),
		prefs:   memory.NewPreferenceStore(),
		events:  new(MockEventPublisher),
		metrics: &metricsSpy{},
	}
	deps := usecase.WorkspaceDeps{
		Leads:         env.leads,
		Opportunities: env.opps,
		Source:        staticSource(fixtureLeads()),
		Controls:      usecase.NewControlsRepository(env.prefs),
		Events:        env.events,
		Latency:       usecase.LatencyFunc(env.wait),
		Failure:       usecase.NeverFail,
		Metrics:       env.metrics,
		Now:           func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) },
	}
	if mutate != nil {
		mutate(&deps)
	}
	env.ws = usecase.NewLeadWorkspace(deps)
	return env
}

// started cria o ambiente já com os leads carregados.
func started(t *testing.T, mutate func(*usecase.WorkspaceDeps)) *testEnv {
	t.Helper()
	env := newTestEnv(t, mutate)
	require.NoError(t, env.ws.Startup(context.Background()))
	return env
}

func mustLead(t *testing.T, env *testEnv, id int) entity.Lead {
	t.Helper()
	l, ok := env.leads.Get(id)
	require.True(t, ok, "lead %d deveria existir", id)
	return l
}

func ids(leads []entity.Lead) []int {
	out := make([]int, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}
