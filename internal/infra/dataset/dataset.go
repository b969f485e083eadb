package dataset

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

//go:embed leads.json
var bundledLeads []byte

// Source lê o dataset estático. Cada chamada decodifica de novo, então quem
// recebe a lista pode mutá-la sem afetar o original.
type Source struct {
	raw []byte
}

// NewBundledSource usa o leads.json embutido no binário.
func NewBundledSource() *Source {
	return &Source{raw: bundledLeads}
}

func NewSourceFromBytes(raw []byte) *Source {
	return &Source{raw: append([]byte(nil), raw...)}
}

// NewFileSource permite trocar o dataset por um arquivo externo.
func NewFileSource(path string) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler dataset %s: %w", path, err)
	}
	return &Source{raw: raw}, nil
}

func (s *Source) Leads(_ context.Context) ([]entity.Lead, error) {
	var leads []entity.Lead
	if err := json.Unmarshal(s.raw, &leads); err != nil {
		return nil, fmt.Errorf("dataset de leads inválido: %w", err)
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	for _, l := range leads {
		if !l.Status.IsValid() {
			return nil, fmt.Errorf("lead %d com status desconhecido %q", l.ID, l.Status)
		}
	}
	return leads, nil
}
