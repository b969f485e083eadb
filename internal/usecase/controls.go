package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// Chave única, com namespace, onde os controles ficam salvos.
const ControlsKey = "leads-mvp:v1"

// storedControls aceita campos ausentes; cada um cai no default separadamente.
type storedControls struct {
	SearchText            *string `json:"searchText"`
	StatusFilter          *string `json:"statusFilter"`
	SortDescendingByScore *bool   `json:"sortDescendingByScore"`
}

// DecodeControls nunca falha: conteúdo corrompido vira default.
// O bool indica se o conteúdo pôde ser lido.
func DecodeControls(raw []byte) (entity.ViewControls, bool) {
	c := entity.DefaultViewControls()

	var s storedControls
	if err := json.Unmarshal(raw, &s); err != nil {
		return c, false
	}

	if s.SearchText != nil {
		c.SearchText = *s.SearchText
	}
	if s.StatusFilter != nil && *s.StatusFilter != "" {
		if f := entity.StatusFilter(*s.StatusFilter); f.IsValid() {
			c.StatusFilter = f
		}
	}
	if s.SortDescendingByScore != nil {
		c.SortDescendingByScore = *s.SortDescendingByScore
	}
	return c, true
}

func EncodeControls(c entity.ViewControls) ([]byte, error) {
	return json.Marshal(c)
}

// ControlsRepository lê e grava os controles no PreferenceStore.
type ControlsRepository struct {
	Store entity.PreferenceStore
}

func NewControlsRepository(store entity.PreferenceStore) *ControlsRepository {
	return &ControlsRepository{Store: store}
}

// Load devolve os controles salvos. Chave ausente ou JSON inválido retornam os
// defaults sem erro; só falha de leitura do store é reportada.
func (r *ControlsRepository) Load(ctx context.Context) (entity.ViewControls, error) {
	raw, found, err := r.Store.Get(ctx, ControlsKey)
	if err != nil {
		return entity.DefaultViewControls(), fmt.Errorf("erro ao ler controles: %w", err)
	}
	if !found {
		return entity.DefaultViewControls(), nil
	}
	c, _ := DecodeControls(raw)
	return c, nil
}

func (r *ControlsRepository) Save(ctx context.Context, c entity.ViewControls) error {
	body, err := EncodeControls(c)
	if err != nil {
		return fmt.Errorf("erro ao converter controles: %w", err)
	}
	if err := r.Store.Set(ctx, ControlsKey, body); err != nil {
		return fmt.Errorf("erro ao gravar controles: %w", err)
	}
	return nil
}
