package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

// LeadSource entrega o dataset estático de leads.
type LeadSource interface {
	Leads(ctx context.Context) ([]entity.Lead, error)
}

type WorkspaceMetrics interface {
	RecordLeadSave(outcome string)
	RecordConversion()
}

const (
	SaveOutcomeOK        = "ok"
	SaveOutcomeFailed    = "failed"
	SaveOutcomeInvalid   = "invalid"
	SaveOutcomeRejected  = "rejected"
	SaveOutcomeDiscarded = "discarded"
)

type noopMetrics struct{}

func (noopMetrics) RecordLeadSave(string) {}
func (noopMetrics) RecordConversion()     {}

// IDGenerator gera IDs de oportunidade.
type IDGenerator func() (string, error)

func NewOpportunityID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return "opp_" + u.String(), nil
}

// PanelState é o que o painel de edição mostra.
type PanelState struct {
	Open   bool         `json:"open"`
	Draft  *entity.Lead `json:"draft"`
	Saving bool         `json:"saving"`
	Error  string       `json:"error,omitempty"`
}

type Summary struct {
	Loading bool `json:"loading"`
	Total   int  `json:"total"`
	Visible int  `json:"visible"`
}

// ControlsUpdate altera só os campos não-nil.
type ControlsUpdate struct {
	SearchText            *string              `json:"searchText,omitempty"`
	StatusFilter          *entity.StatusFilter `json:"statusFilter,omitempty"`
	SortDescendingByScore *bool                `json:"sortDescendingByScore,omitempty"`
}
