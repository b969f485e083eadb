package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Workspace é o que o handler precisa do LeadWorkspace.
type Workspace interface {
	VisibleLeads() []entity.Lead
	AllLeads() ([]entity.Lead, bool)
	Lead(id int) (entity.Lead, bool)
	Summary() usecase.Summary
	Opportunities() []entity.Opportunity
	Controls() entity.ViewControls
	UpdateControls(ctx context.Context, u usecase.ControlsUpdate) (entity.ViewControls, error)
	OpenLead(id int) error
	ClosePanel()
	Panel() usecase.PanelState
	UpdateDraft(patch entity.LeadPatch) bool
	SaveLead(ctx context.Context, draft entity.Lead) error
	ConvertToOpportunity(ctx context.Context, lead entity.Lead) (*entity.Opportunity, error)
}

type LeadHandler struct {
	ws  Workspace
	log *logger.Logger
}

func NewLeadHandler(ws Workspace, log *logger.Logger) *LeadHandler {
	return &LeadHandler{ws: ws, log: log.Component("lead-handler")}
}

type LeadListResponse struct {
	Summary  usecase.Summary     `json:"summary"`
	Controls entity.ViewControls `json:"controls"`
	Leads    []entity.Lead       `json:"leads"`
}

type AllLeadsResponse struct {
	Loading bool          `json:"loading"`
	Leads   []entity.Lead `json:"leads"`
}

type SaveLeadResponse struct {
	Saved bool               `json:"saved"`
	Panel usecase.PanelState `json:"panel"`
}

type ConvertResponse struct {
	Converted   bool                `json:"converted"`
	Opportunity *entity.Opportunity `json:"opportunity,omitempty"`
}

// Routes monta as rotas; writes recebe o middleware aplicado às mutações.
func (h *LeadHandler) Routes(r chi.Router, writes func(http.Handler) http.Handler) {
	r.Get("/leads", h.ListVisible)
	r.Get("/leads/all", h.ListAll)
	r.Get("/opportunities", h.ListOpportunities)
	r.Get("/controls", h.GetControls)
	r.Get("/panel", h.GetPanel)

	r.Group(func(r chi.Router) {
		if writes != nil {
			r.Use(writes)
		}
		r.Put("/controls", h.UpdateControls)
		r.Post("/leads/{id}/open", h.OpenLead)
		r.Post("/leads/{id}/convert", h.ConvertLead)
		r.Patch("/panel/draft", h.UpdateDraft)
		r.Post("/panel/save", h.SavePanel)
		r.Post("/panel/convert", h.ConvertPanel)
		r.Delete("/panel", h.ClosePanel)
	})
}

func (h *LeadHandler) ListVisible(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LeadListResponse{
		Summary:  h.ws.Summary(),
		Controls: h.ws.Controls(),
		Leads:    h.ws.VisibleLeads(),
	})
}

func (h *LeadHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	leads, loaded := h.ws.AllLeads()
	if leads == nil {
		leads = []entity.Lead{}
	}
	writeJSON(w, http.StatusOK, AllLeadsResponse{Loading: !loaded, Leads: leads})
}

func (h *LeadHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.Opportunities())
}

func (h *LeadHandler) GetControls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.Controls())
}

func (h *LeadHandler) UpdateControls(w http.ResponseWriter, r *http.Request) {
	var input usecase.ControlsUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	c, err := h.ws.UpdateControls(r.Context(), input)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *LeadHandler) GetPanel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.Panel())
}

func (h *LeadHandler) OpenLead(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}
	if err := h.ws.OpenLead(id); err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Panel())
}

func (h *LeadHandler) ClosePanel(w http.ResponseWriter, r *http.Request) {
	h.ws.ClosePanel()
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var patch entity.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "INVALID_STATUS", "Status inválido")
		return
	}
	if !h.ws.UpdateDraft(patch) {
		h.writeUsecaseError(w, usecase.ErrNoOpenSession)
		return
	}
	writeJSON(w, http.StatusOK, h.ws.Panel())
}

// SavePanel salva o rascunho aberto. A resposta só sai depois da latência simulada.
func (h *LeadHandler) SavePanel(w http.ResponseWriter, r *http.Request) {
	panel := h.ws.Panel()
	if panel.Draft == nil {
		h.writeUsecaseError(w, usecase.ErrNoOpenSession)
		return
	}

	err := h.ws.SaveLead(r.Context(), *panel.Draft)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, SaveLeadResponse{Saved: true, Panel: h.ws.Panel()})
	case errors.Is(err, usecase.ErrSaveFailed):
		writeJSON(w, http.StatusServiceUnavailable, SaveLeadResponse{Saved: false, Panel: h.ws.Panel()})
	case errors.Is(err, usecase.ErrInvalidEmail):
		writeJSON(w, http.StatusUnprocessableEntity, SaveLeadResponse{Saved: false, Panel: h.ws.Panel()})
	default:
		h.writeUsecaseError(w, err)
	}
}

func (h *LeadHandler) ConvertLead(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(w, r)
	if !ok {
		return
	}
	lead, found := h.ws.Lead(id)
	if !found {
		h.writeUsecaseError(w, usecase.ErrLeadNotFound)
		return
	}
	h.convert(w, r, lead)
}

// ConvertPanel converte o lead que está aberto no painel.
func (h *LeadHandler) ConvertPanel(w http.ResponseWriter, r *http.Request) {
	panel := h.ws.Panel()
	if panel.Draft == nil {
		h.writeUsecaseError(w, usecase.ErrNoOpenSession)
		return
	}
	h.convert(w, r, *panel.Draft)
}

func (h *LeadHandler) convert(w http.ResponseWriter, r *http.Request, lead entity.Lead) {
	opp, err := h.ws.ConvertToOpportunity(r.Context(), lead)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	if opp == nil {
		writeJSON(w, http.StatusOK, ConvertResponse{Converted: false})
		return
	}
	writeJSON(w, http.StatusCreated, ConvertResponse{Converted: true, Opportunity: opp})
}

func (h *LeadHandler) writeUsecaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeErrorResponse(w, http.StatusServiceUnavailable, te.Code, te.Message)
		return
	}
	h.log.Error().Err(err).Msg("erro inesperado")
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno")
}

func domainStatus(code string) int {
	switch code {
	case usecase.ErrLeadNotFound.Code:
		return http.StatusNotFound
	case usecase.ErrSaveInProgress.Code, usecase.ErrNoOpenSession.Code, usecase.ErrDraftMismatch.Code:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func leadID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "ID inválido")
		return 0, false
	}
	return id, true
}
