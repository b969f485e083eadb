package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

func TestOpportunityStoreNewestFirst(t *testing.T) {
	s := NewOpportunityStore()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	_, ok := s.CreateFromLead(entity.Lead{ID: 1, Name: "Ana", Company: "Acme", Status: entity.StatusNovo}, "opp_a", now)
	require.True(t, ok)
	_, ok = s.CreateFromLead(entity.Lead{ID: 2, Name: "Bo", Company: "Zeta", Status: entity.StatusQualificado}, "opp_b", now.Add(time.Second))
	require.True(t, ok)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "opp_b", list[0].ID)
	assert.Equal(t, "opp_a", list[1].ID)
	assert.Equal(t, "Zeta", list[0].AccountName)
}

func TestOpportunityStoreIgnoresConvertedLead(t *testing.T) {
	s := NewOpportunityStore()

	opp, ok := s.CreateFromLead(entity.Lead{ID: 1, Status: entity.StatusConvertido}, "opp_x", time.Now())

	assert.False(t, ok)
	assert.Nil(t, opp)
	assert.Empty(t, s.List())
}

// TestOpportunityStoreReturnsCopies - quem recebe não altera o store
func TestOpportunityStoreReturnsCopies(t *testing.T) {
	s := NewOpportunityStore()
	opp, _ := s.CreateFromLead(entity.Lead{ID: 1, Name: "Ana", Status: entity.StatusNovo}, "opp_a", time.Now())
	opp.Name = "alterado"

	list := s.List()
	list[0].Stage = "Fechado"

	again := s.List()
	assert.Equal(t, "Ana", again[0].Name)
	assert.Equal(t, entity.StageProspectando, again[0].Stage)
}
