package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func scenarioLeads() []entity.Lead {
	return []entity.Lead{
		{ID: 1, Name: "Ana", Company: "Acme", Score: 10, Status: entity.StatusNovo},
		{ID: 2, Name: "Bo", Company: "Zeta", Score: 90, Status: entity.StatusNovo},
	}
}

// TestProjectLeadsDefaultOrder - maior pontuação primeiro
func TestProjectLeadsDefaultOrder(t *testing.T) {
	out := usecase.ProjectLeads(scenarioLeads(), entity.DefaultViewControls())
	assert.Equal(t, []int{2, 1}, ids(out))
}

// TestProjectLeadsSearchIsCaseInsensitive - "acme" encontra Acme
func TestProjectLeadsSearchIsCaseInsensitive(t *testing.T) {
	c := entity.DefaultViewControls()
	c.SearchText = "acme"
	assert.Equal(t, []int{1}, ids(usecase.ProjectLeads(scenarioLeads(), c)))
}

func TestProjectLeadsFilters(t *testing.T) {
	leads := []entity.Lead{
		{ID: 1, Name: "Ana Souza", Company: "Acme", Score: 10, Status: entity.StatusNovo},
		{ID: 2, Name: "Bruno", Company: "Zeta Logística", Score: 90, Status: entity.StatusContatado},
		{ID: 3, Name: "Carla", Company: "Horizonte", Score: 50, Status: entity.StatusQualificado},
		{ID: 4, Name: "Diego", Company: "ACME Agro", Score: 70, Status: entity.StatusContatado},
	}

	tests := []struct {
		name     string
		controls entity.ViewControls
		want     []int
	}{
		{"todos sem busca", entity.ViewControls{StatusFilter: entity.FilterTodos, SortDescendingByScore: true}, []int{2, 4, 3, 1}},
		{"ascendente", entity.ViewControls{StatusFilter: entity.FilterTodos}, []int{1, 3, 4, 2}},
		{"filtro de status", entity.ViewControls{StatusFilter: "Contatado", SortDescendingByScore: true}, []int{2, 4}},
		{"busca com espaços nas pontas", entity.ViewControls{SearchText: "  acme ", StatusFilter: entity.FilterTodos, SortDescendingByScore: true}, []int{4, 1}},
		{"busca no nome", entity.ViewControls{SearchText: "SOUZA", StatusFilter: entity.FilterTodos}, []int{1}},
		{"busca e status combinados", entity.ViewControls{SearchText: "acme", StatusFilter: "Novo"}, []int{1}},
		{"busca só com espaços equivale a vazia", entity.ViewControls{SearchText: "   ", StatusFilter: "Qualificado"}, []int{3}},
		{"nada encontrado", entity.ViewControls{SearchText: "inexistente", StatusFilter: entity.FilterTodos}, []int{}},
		{"status sem leads", entity.ViewControls{StatusFilter: "Convertido"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(usecase.ProjectLeads(leads, tt.controls)))
		})
	}
}

// TestProjectLeadsStableOnTies - empate mantém a ordem original nos dois sentidos
func TestProjectLeadsStableOnTies(t *testing.T) {
	leads := []entity.Lead{
		{ID: 1, Name: "A", Score: 50, Status: entity.StatusNovo},
		{ID: 2, Name: "B", Score: 70, Status: entity.StatusNovo},
		{ID: 3, Name: "C", Score: 50, Status: entity.StatusNovo},
		{ID: 4, Name: "D", Score: 50, Status: entity.StatusNovo},
	}

	desc := usecase.ProjectLeads(leads, entity.DefaultViewControls())
	assert.Equal(t, []int{2, 1, 3, 4}, ids(desc))

	asc := usecase.ProjectLeads(leads, entity.ViewControls{StatusFilter: entity.FilterTodos})
	assert.Equal(t, []int{1, 3, 4, 2}, ids(asc))
}

func TestProjectLeadsDoesNotMutateInput(t *testing.T) {
	leads := scenarioLeads()
	before := append([]entity.Lead(nil), leads...)

	out := usecase.ProjectLeads(leads, entity.DefaultViewControls())
	out[0].Name = "alterado"

	assert.Equal(t, before, leads)
}

func TestProjectLeadsEmptyInput(t *testing.T) {
	out := usecase.ProjectLeads(nil, entity.DefaultViewControls())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
