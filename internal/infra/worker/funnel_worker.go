package worker

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

type StatusCounter interface {
	StatusCounts() (map[entity.Status]int, bool)
}

type FunnelGauge interface {
	SetLeadsByStatus(status string, count int)
}

// FunnelWorker publica periodicamente quantos leads há em cada status.
type FunnelWorker struct {
	counter      StatusCounter
	gauge        FunnelGauge
	tickInterval time.Duration
	log          *logger.Logger
}

func NewFunnelWorker(counter StatusCounter, gauge FunnelGauge, tick time.Duration, log *logger.Logger) *FunnelWorker {
	return &FunnelWorker{
		counter:      counter,
		gauge:        gauge,
		tickInterval: tick,
		log:          log.Component("funnel-worker"),
	}
}

func (w *FunnelWorker) Start(ctx context.Context) {
	w.log.Info().Dur("tick", w.tickInterval).Msg("🕒 funnel worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Refresh()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("⚠️ funnel worker encerrado")
			return
		case <-ticker.C:
			w.Refresh()
		}
	}
}

// Refresh atualiza o gauge; enquanto os leads carregam não publica nada.
func (w *FunnelWorker) Refresh() bool {
	counts, loaded := w.counter.StatusCounts()
	if !loaded {
		w.log.Debug().Msg("leads ainda carregando, funil não atualizado")
		return false
	}
	for _, s := range entity.AllStatuses {
		w.gauge.SetLeadsByStatus(string(s), counts[s])
	}
	return true
}
