package usecase

import (
	"math/rand"
	"sync"
	"time"
)

// FailureDecider decide se o salvamento simulado falha.
type FailureDecider interface {
	ShouldFail() bool
}

type FailureFunc func() bool

func (f FailureFunc) ShouldFail() bool { return f() }

var (
	AlwaysFail FailureDecider = FailureFunc(func() bool { return true })
	NeverFail  FailureDecider = FailureFunc(func() bool { return false })
)

// RandomFailure falha com probabilidade Rate, sorteada de forma uniforme.
type RandomFailure struct {
	rate float64
	mu   sync.Mutex
	rnd  *rand.Rand
}

func NewRandomFailure(rate float64, seed int64) *RandomFailure {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomFailure{rate: rate, rnd: rand.New(rand.NewSource(seed))}
}

func (r *RandomFailure) ShouldFail() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64() < r.rate
}
