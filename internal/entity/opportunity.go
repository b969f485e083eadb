package entity

import "time"

type Stage string

const StageProspectando Stage = "Prospectando"

type Opportunity struct {
	ID          string    `json:"id"`
	LeadID      int       `json:"lead_id"`
	Name        string    `json:"name"`
	Stage       Stage     `json:"stage"`
	Amount      *float64  `json:"amount"` // sempre null na conversão
	AccountName string    `json:"account_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewOpportunityFromLead copia nome e empresa do lead no momento da conversão.
func NewOpportunityFromLead(id string, lead Lead, now time.Time) *Opportunity {
	return &Opportunity{
		ID:          id,
		LeadID:      lead.ID,
		Name:        lead.Name,
		Stage:       StageProspectando,
		Amount:      nil,
		AccountName: lead.Company,
		CreatedAt:   now,
	}
}

type OpportunityStore interface {
	CreateFromLead(lead Lead, id string, now time.Time) (*Opportunity, bool)
	List() []Opportunity
}
