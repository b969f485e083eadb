package usecase

import "time"

// Latency simula o tempo de ida e volta de uma chamada remota. Wait nunca falha
// e não é interrompido; quem chama decide se ainda deve aplicar o resultado.
type Latency interface {
	Wait(d time.Duration)
}

type SleepLatency struct{}

func (SleepLatency) Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	<-t.C
}

// NoLatency resolve na hora.
type NoLatency struct{}

func (NoLatency) Wait(time.Duration) {}

// LatencyFunc adapta uma função comum.
type LatencyFunc func(d time.Duration)

func (f LatencyFunc) Wait(d time.Duration) { f(d) }

type Latencies struct {
	Load    time.Duration
	Save    time.Duration
	Convert time.Duration
}

func DefaultLatencies() Latencies {
	return Latencies{
		Load:    800 * time.Millisecond,
		Save:    900 * time.Millisecond,
		Convert: 600 * time.Millisecond,
	}
}
