package usecase

import (
	"sort"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// ProjectLeads calcula a lista visível: filtro de status, busca por nome/empresa
// e ordenação estável por pontuação. Não altera o slice recebido.
func ProjectLeads(leads []entity.Lead, c entity.ViewControls) []entity.Lead {
	search := strings.ToLower(strings.TrimSpace(c.SearchText))

	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if !c.StatusFilter.Matches(l.Status) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(l.Name), search) &&
			!strings.Contains(strings.ToLower(l.Company), search) {
			continue
		}
		out = append(out, l)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c.SortDescendingByScore {
			return out[i].Score > out[j].Score
		}
		return out[i].Score < out[j].Score
	})
	return out
}
