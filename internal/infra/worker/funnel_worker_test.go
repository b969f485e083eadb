package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

type fakeCounter struct {
	counts map[entity.Status]int
	loaded bool
}

func (c fakeCounter) StatusCounts() (map[entity.Status]int, bool) {
	return c.counts, c.loaded
}

type gaugeSpy struct {
	mu     sync.Mutex
	values map[string]int
	sets   int
}

func (g *gaugeSpy) SetLeadsByStatus(status string, count int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.values == nil {
		g.values = map[string]int{}
	}
	g.values[status] = count
	g.sets++
}

func (g *gaugeSpy) setCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sets
}

func TestRefreshPublishesEveryStatus(t *testing.T) {
	gauge := &gaugeSpy{}
	counter := fakeCounter{loaded: true, counts: map[entity.Status]int{
		entity.StatusNovo:       3,
		entity.StatusConvertido: 1,
	}}
	w := NewFunnelWorker(counter, gauge, time.Minute, logger.Nop())

	assert.True(t, w.Refresh())
	assert.Len(t, gauge.values, len(entity.AllStatuses))
	assert.Equal(t, 3, gauge.values["Novo"])
	assert.Equal(t, 1, gauge.values["Convertido"])
	assert.Equal(t, 0, gauge.values["Perdido"])
}

// TestRefreshSkipsWhileLoading - nada é publicado antes da carga
func TestRefreshSkipsWhileLoading(t *testing.T) {
	gauge := &gaugeSpy{}
	w := NewFunnelWorker(fakeCounter{}, gauge, time.Minute, logger.Nop())

	assert.False(t, w.Refresh())
	assert.Equal(t, 0, gauge.setCount())
}

func TestStartRefreshesUntilCancelled(t *testing.T) {
	gauge := &gaugeSpy{}
	counter := fakeCounter{loaded: true, counts: map[entity.Status]int{}}
	w := NewFunnelWorker(counter, gauge, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return gauge.setCount() >= 2*len(entity.AllStatuses)
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("funnel worker não parou")
	}
}
