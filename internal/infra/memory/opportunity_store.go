package memory

import (
	"sync"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

var _ entity.OpportunityStore = (*OpportunityStore)(nil)

// OpportunityStore só cresce durante a sessão; mais novas primeiro.
type OpportunityStore struct {
	mu    sync.RWMutex
	items []entity.Opportunity
}

func NewOpportunityStore() *OpportunityStore {
	return &OpportunityStore{}
}

func (s *OpportunityStore) CreateFromLead(lead entity.Lead, id string, now time.Time) (*entity.Opportunity, bool) {
	if lead.Status == entity.StatusConvertido {
		return nil, false
	}
	opp := entity.NewOpportunityFromLead(id, lead, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Opportunity, 0, len(s.items)+1)
	next = append(next, *opp)
	next = append(next, s.items...)
	s.items = next

	out := *opp
	return &out, true
}

func (s *OpportunityStore) List() []entity.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Opportunity, len(s.items))
	copy(out, s.items)
	return out
}
