package memory

import (
	"context"
	"sync"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

var _ entity.PreferenceStore = (*PreferenceStore)(nil)

type PreferenceStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{values: map[string][]byte{}}
}

func (s *PreferenceStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *PreferenceStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
