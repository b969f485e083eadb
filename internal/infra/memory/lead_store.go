package memory

import (
	"sync"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

var _ entity.LeadStore = (*LeadStore)(nil)

// LeadStore guarda os leads em memória. Toda mutação instala um slice novo
// (copy-on-write), então um snapshot lido nunca muda por baixo de quem leu.
type LeadStore struct {
	mu        sync.RWMutex
	leads     []entity.Lead // nil = carregando
	originals map[int]entity.Lead
}

func NewLeadStore() *LeadStore {
	return &LeadStore{originals: map[int]entity.Lead{}}
}

func (s *LeadStore) BeginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = nil
}

// Load copia o dataset duas vezes: uma para trabalho e outra como original
// usado pelo Revert.
func (s *LeadStore) Load(leads []entity.Lead) {
	working := make([]entity.Lead, len(leads))
	copy(working, leads)

	originals := make(map[int]entity.Lead, len(leads))
	for _, l := range leads {
		if _, dup := originals[l.ID]; !dup {
			originals[l.ID] = l
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = working
	s.originals = originals
}

func (s *LeadStore) Snapshot() ([]entity.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.leads == nil {
		return nil, false
	}
	out := make([]entity.Lead, len(s.leads))
	copy(out, s.leads)
	return out, true
}

func (s *LeadStore) Get(id int) (entity.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.ID == id {
			return l, true
		}
	}
	return entity.Lead{}, false
}

func (s *LeadStore) ApplyEdit(id int, patch entity.LeadPatch) bool {
	return s.replace(id, patch.Apply)
}

// Revert volta o lead ao valor do dataset original; sem original, nada muda.
func (s *LeadStore) Revert(id int) bool {
	s.mu.RLock()
	orig, ok := s.originals[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return s.replace(id, func(entity.Lead) entity.Lead { return orig })
}

func (s *LeadStore) SetStatus(id int, status entity.Status) bool {
	return s.replace(id, func(l entity.Lead) entity.Lead {
		l.Status = status
		return l
	})
}

// MarkConverted faz check-and-set atômico e devolve o lead como estava antes.
func (s *LeadStore) MarkConverted(id int) (entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return entity.Lead{}, entity.ErrLeadNotFound
	}
	before := s.leads[idx]
	if before.Status == entity.StatusConvertido {
		return before, entity.ErrLeadAlreadyConverted
	}

	next := make([]entity.Lead, len(s.leads))
	copy(next, s.leads)
	next[idx].Status = entity.StatusConvertido
	s.leads = next
	return before, nil
}

func (s *LeadStore) replace(id int, fn func(entity.Lead) entity.Lead) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	next := make([]entity.Lead, len(s.leads))
	copy(next, s.leads)
	updated := fn(next[idx])
	updated.ID = id
	next[idx] = updated
	s.leads = next
	return true
}

func (s *LeadStore) indexOf(id int) int {
	for i, l := range s.leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}
