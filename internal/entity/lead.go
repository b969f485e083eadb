package entity

import "errors"

type Status string

const (
	StatusNovo        Status = "Novo"
	StatusContatado   Status = "Contatado"
	StatusQualificado Status = "Qualificado"
	StatusPerdido     Status = "Perdido"
	StatusConvertido  Status = "Convertido" // terminal, normalmente via conversão
)

var AllStatuses = []Status{
	StatusNovo,
	StatusContatado,
	StatusQualificado,
	StatusPerdido,
	StatusConvertido,
}

func (s Status) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

var (
	ErrLeadNotFound         = errors.New("lead not found")
	ErrLeadAlreadyConverted = errors.New("lead already converted")
)

type Lead struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	Score   int    `json:"score"`
	Status  Status `json:"status"`
}

// LeadPatch carrega só os campos alterados; nil significa "manter".
type LeadPatch struct {
	Name    *string `json:"name,omitempty"`
	Company *string `json:"company,omitempty"`
	Email   *string `json:"email,omitempty"`
	Source  *string `json:"source,omitempty"`
	Score   *int    `json:"score,omitempty"`
	Status  *Status `json:"status,omitempty"`
}

// PatchFromLead builds a patch that overwrites every editable field with l's values.
func PatchFromLead(l Lead) LeadPatch {
	return LeadPatch{
		Name:    &l.Name,
		Company: &l.Company,
		Email:   &l.Email,
		Source:  &l.Source,
		Score:   &l.Score,
		Status:  &l.Status,
	}
}

// Apply returns a copy of l with the patch merged in. The ID never changes.
func (p LeadPatch) Apply(l Lead) Lead {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Company != nil {
		l.Company = *p.Company
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.Score != nil {
		l.Score = *p.Score
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	return l
}

func (p LeadPatch) IsEmpty() bool {
	return p.Name == nil && p.Company == nil && p.Email == nil &&
		p.Source == nil && p.Score == nil && p.Status == nil
}

// LeadStore é a única fonte de verdade dos leads em memória.
type LeadStore interface {
	BeginLoading()
	Load(leads []Lead)
	Snapshot() ([]Lead, bool)
	Get(id int) (Lead, bool)
	ApplyEdit(id int, patch LeadPatch) bool
	Revert(id int) bool
	SetStatus(id int, status Status) bool
	MarkConverted(id int) (Lead, error)
}
