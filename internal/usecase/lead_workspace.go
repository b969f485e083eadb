package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type WorkspaceDeps struct {
	Leads         entity.LeadStore
	Opportunities entity.OpportunityStore
	Source        LeadSource
	Controls      *ControlsRepository
	Events        queue.EventPublisherInterface
	Latency       Latency
	Latencies     Latencies
	Failure       FailureDecider
	Metrics       WorkspaceMetrics
	NewID         IDGenerator
	Now           func() time.Time
	Log           *logger.Logger
}

// editSession é o lead aberto no painel. O token muda a cada abertura para
// que um salvamento antigo não mexa numa sessão nova.
type editSession struct {
	token  uint64
	draft  entity.Lead
	saving bool
	err    string
}

// LeadWorkspace é o dono exclusivo dos stores, da sessão de edição e dos
// controles. O mutex só é segurado nas transições de estado, nunca durante a
// latência simulada, então fechar/abrir o painel durante um salvamento é
// permitido.
type LeadWorkspace struct {
	leads     entity.LeadStore
	opps      entity.OpportunityStore
	source    LeadSource
	prefs     *ControlsRepository
	events    queue.EventPublisherInterface
	latency   Latency
	latencies Latencies
	failure   FailureDecider
	metrics   WorkspaceMetrics
	newID     IDGenerator
	now       func() time.Time
	log       *logger.Logger

	mu        sync.Mutex
	session   *editSession
	nextToken uint64
	controls  entity.ViewControls
	tornDown  bool

	persistMu sync.Mutex
}

func NewLeadWorkspace(d WorkspaceDeps) *LeadWorkspace {
	w := &LeadWorkspace{
		leads:     d.Leads,
		opps:      d.Opportunities,
		source:    d.Source,
		prefs:     d.Controls,
		events:    d.Events,
		latency:   d.Latency,
		latencies: d.Latencies,
		failure:   d.Failure,
		metrics:   d.Metrics,
		newID:     d.NewID,
		now:       d.Now,
		log:       d.Log,
		controls:  entity.DefaultViewControls(),
	}
	if w.log == nil {
		w.log = logger.Nop()
	}
	w.log = w.log.Component("workspace")
	if w.latency == nil {
		w.latency = SleepLatency{}
	}
	if w.latencies == (Latencies{}) {
		w.latencies = DefaultLatencies()
	}
	if w.failure == nil {
		w.failure = NewRandomFailure(0.25, 0)
	}
	if w.metrics == nil {
		w.metrics = noopMetrics{}
	}
	if w.newID == nil {
		w.newID = NewOpportunityID
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.events == nil {
		w.events = queue.LogPublisher{Log: w.log}
	}
	return w
}

// Startup lê os controles salvos e carrega os leads depois da latência de carga.
func (w *LeadWorkspace) Startup(ctx context.Context) error {
	if w.prefs != nil {
		c, err := w.prefs.Load(ctx)
		if err != nil {
			w.log.Warn().Err(err).Msg("controles salvos indisponíveis, usando defaults")
		}
		w.mu.Lock()
		w.controls = c
		w.mu.Unlock()
	}

	w.leads.BeginLoading()
	w.log.Info().Dur("latency", w.latencies.Load).Msg("⏳ carregando leads (simulação)")
	w.latency.Wait(w.latencies.Load)

	leads, err := w.source.Leads(ctx)
	if err != nil {
		return fmt.Errorf("erro ao carregar leads: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tornDown {
		return nil
	}
	w.leads.Load(leads)
	w.log.Info().Int("total", len(leads)).Msg("✅ leads carregados")
	return nil
}

// Teardown desmonta o workspace: continuações pendentes viram no-op.
func (w *LeadWorkspace) Teardown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tornDown = true
	w.session = nil
}

func (w *LeadWorkspace) OpenLead(id int) error {
	lead, ok := w.leads.Get(id)
	if !ok {
		return ErrLeadNotFound
	}
	w.OpenLeadValue(lead)
	return nil
}

// OpenLeadValue abre uma cópia do lead, substituindo qualquer sessão anterior.
func (w *LeadWorkspace) OpenLeadValue(lead entity.Lead) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextToken++
	w.session = &editSession{token: w.nextToken, draft: lead}
}

func (w *LeadWorkspace) ClosePanel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session = nil
}

// UpdateDraft mexe só no rascunho, nunca no store.
func (w *LeadWorkspace) UpdateDraft(patch entity.LeadPatch) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session == nil {
		return false
	}
	w.session.draft = patch.Apply(w.session.draft)
	return true
}

// SaveLead valida, aplica a edição de forma otimista, espera a latência e
// então confirma ou reverte para o valor original do dataset.
func (w *LeadWorkspace) SaveLead(ctx context.Context, draft entity.Lead) error {
	w.mu.Lock()
	s := w.session
	switch {
	case s == nil:
		w.mu.Unlock()
		return ErrNoOpenSession
	case s.saving:
		w.mu.Unlock()
		w.metrics.RecordLeadSave(SaveOutcomeRejected)
		return ErrSaveInProgress
	case s.draft.ID != draft.ID:
		w.mu.Unlock()
		return ErrDraftMismatch
	}

	if !entity.IsValidEmail(draft.Email) {
		s.saving = false
		s.err = MsgInvalidEmail
		w.mu.Unlock()
		w.metrics.RecordLeadSave(SaveOutcomeInvalid)
		return ErrInvalidEmail
	}

	w.leads.ApplyEdit(draft.ID, entity.PatchFromLead(draft))
	s.draft = draft
	s.saving = true
	s.err = ""
	token := s.token
	w.mu.Unlock()

	w.log.Debug().Int("lead_id", draft.ID).Msg("💾 edição aplicada, aguardando confirmação")
	w.latency.Wait(w.latencies.Save)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tornDown {
		w.metrics.RecordLeadSave(SaveOutcomeDiscarded)
		return nil
	}

	current := w.session
	sameSession := current != nil && current.token == token

	if w.failure.ShouldFail() {
		w.leads.Revert(draft.ID)
		if sameSession {
			current.saving = false
			current.err = MsgSaveFailed
		}
		w.metrics.RecordLeadSave(SaveOutcomeFailed)
		w.log.Warn().Int("lead_id", draft.ID).Msg("❌ falha simulada no salvamento, lead revertido")
		return ErrSaveFailed
	}

	if sameSession {
		w.session = nil
	}
	w.metrics.RecordLeadSave(SaveOutcomeOK)
	w.log.Info().Int("lead_id", draft.ID).Msg("✅ lead salvo")
	return nil
}

// ConvertToOpportunity marca o lead como Convertido e cria a oportunidade numa
// única transição. Lead já convertido (no argumento ou no store) é no-op.
func (w *LeadWorkspace) ConvertToOpportunity(ctx context.Context, lead entity.Lead) (*entity.Opportunity, error) {
	if lead.Status == entity.StatusConvertido {
		return nil, nil
	}

	w.mu.Lock()
	if w.tornDown {
		w.mu.Unlock()
		return nil, nil
	}

	var before entity.Lead
	var opp *entity.Opportunity
	err := NewTransaction(w.log).
		Step("marcar lead como convertido",
			func(context.Context) error {
				var err error
				before, err = w.leads.MarkConverted(lead.ID)
				return err
			},
			func(context.Context) error {
				if !w.leads.SetStatus(lead.ID, before.Status) {
					return entity.ErrLeadNotFound
				}
				return nil
			}).
		Step("criar oportunidade",
			func(context.Context) error {
				id, err := w.newID()
				if err != nil {
					return fmt.Errorf("erro ao gerar id: %w", err)
				}
				created, ok := w.opps.CreateFromLead(lead, id, w.now())
				if !ok {
					return entity.ErrLeadAlreadyConverted
				}
				opp = created
				return nil
			}, nil).
		Execute(ctx)
	w.mu.Unlock()

	if err != nil {
		switch {
		case errors.Is(err, entity.ErrLeadAlreadyConverted):
			return nil, nil
		case errors.Is(err, entity.ErrLeadNotFound):
			return nil, ErrLeadNotFound
		default:
			w.log.Error().Err(err).Int("lead_id", lead.ID).Msg("❌ conversão desfeita")
			return nil, &TechnicalError{Code: "CONVERSION_FAILED", Message: err.Error()}
		}
	}

	w.metrics.RecordConversion()
	w.log.Info().Int("lead_id", lead.ID).Str("opportunity_id", opp.ID).Msg("🚀 lead convertido em oportunidade")

	payload := queue.LeadConvertedPayload{
		OpportunityID: opp.ID,
		LeadID:        lead.ID,
		Name:          opp.Name,
		AccountName:   opp.AccountName,
		Email:         lead.Email,
		Source:        lead.Source,
		Score:         lead.Score,
		Stage:         string(opp.Stage),
		ConvertedAt:   opp.CreatedAt,
	}
	if err := w.events.PublishLeadConverted(ctx, payload); err != nil {
		// A conversão já está confirmada localmente; o evento é best effort.
		w.log.Warn().Err(err).Str("opportunity_id", opp.ID).Msg("⚠️ convertido, mas falha ao publicar evento")
	}

	w.latency.Wait(w.latencies.Convert)
	return opp, nil
}

func (w *LeadWorkspace) SetSearchText(ctx context.Context, text string) entity.ViewControls {
	c, _ := w.UpdateControls(ctx, ControlsUpdate{SearchText: &text})
	return c
}

func (w *LeadWorkspace) SetStatusFilter(ctx context.Context, f entity.StatusFilter) (entity.ViewControls, error) {
	return w.UpdateControls(ctx, ControlsUpdate{StatusFilter: &f})
}

func (w *LeadWorkspace) SetSortDescending(ctx context.Context, desc bool) entity.ViewControls {
	c, _ := w.UpdateControls(ctx, ControlsUpdate{SortDescendingByScore: &desc})
	return c
}

// UpdateControls aplica a alteração e persiste; erro de gravação só vai pro log.
func (w *LeadWorkspace) UpdateControls(ctx context.Context, u ControlsUpdate) (entity.ViewControls, error) {
	if u.StatusFilter != nil && !u.StatusFilter.IsValid() {
		return w.Controls(), ErrInvalidFilter
	}

	w.mu.Lock()
	if u.SearchText != nil {
		w.controls.SearchText = *u.SearchText
	}
	if u.StatusFilter != nil {
		w.controls.StatusFilter = *u.StatusFilter
	}
	if u.SortDescendingByScore != nil {
		w.controls.SortDescendingByScore = *u.SortDescendingByScore
	}
	c := w.controls
	w.mu.Unlock()

	w.persistControls(ctx)
	return c, nil
}

// persistControls grava sempre o valor mais recente, serializando as escritas.
func (w *LeadWorkspace) persistControls(ctx context.Context) {
	if w.prefs == nil {
		return
	}
	w.persistMu.Lock()
	defer w.persistMu.Unlock()
	if err := w.prefs.Save(ctx, w.Controls()); err != nil {
		w.log.Warn().Err(err).Msg("⚠️ não foi possível salvar os controles")
	}
}

func (w *LeadWorkspace) Controls() entity.ViewControls {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.controls
}

func (w *LeadWorkspace) Panel() PanelState {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session == nil {
		return PanelState{}
	}
	draft := w.session.draft
	return PanelState{
		Open:   true,
		Draft:  &draft,
		Saving: w.session.saving,
		Error:  w.session.err,
	}
}

// VisibleLeads devolve a projeção atual; vazia enquanto carrega.
func (w *LeadWorkspace) VisibleLeads() []entity.Lead {
	leads, loaded := w.leads.Snapshot()
	if !loaded {
		return []entity.Lead{}
	}
	return ProjectLeads(leads, w.Controls())
}

func (w *LeadWorkspace) Lead(id int) (entity.Lead, bool) {
	return w.leads.Get(id)
}

func (w *LeadWorkspace) AllLeads() ([]entity.Lead, bool) {
	return w.leads.Snapshot()
}

func (w *LeadWorkspace) Opportunities() []entity.Opportunity {
	return w.opps.List()
}

func (w *LeadWorkspace) Summary() Summary {
	leads, loaded := w.leads.Snapshot()
	if !loaded {
		return Summary{Loading: true}
	}
	return Summary{
		Total:   len(leads),
		Visible: len(ProjectLeads(leads, w.Controls())),
	}
}

// StatusCounts conta leads por status, com todos os status presentes.
func (w *LeadWorkspace) StatusCounts() (map[entity.Status]int, bool) {
	leads, loaded := w.leads.Snapshot()
	counts := make(map[entity.Status]int, len(entity.AllStatuses))
	for _, s := range entity.AllStatuses {
		counts[s] = 0
	}
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts, loaded
}
