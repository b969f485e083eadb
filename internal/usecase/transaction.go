package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/ligue-leads/internal/infra/logger"
)

// Transaction executa operações em sequência; se uma falhar, as compensações
// das anteriores rodam em ordem inversa.
type Transaction struct {
	steps []step
	log   *logger.Logger
}

type step struct {
	name       string
	op         func(context.Context) error
	compensate func(context.Context) error
}

func NewTransaction(log *logger.Logger) *Transaction {
	if log == nil {
		log = logger.Nop()
	}
	return &Transaction{log: log}
}

// Step adiciona uma operação e sua compensação (pode ser nil).
func (t *Transaction) Step(name string, op, compensate func(context.Context) error) *Transaction {
	t.steps = append(t.steps, step{name: name, op: op, compensate: compensate})
	return t
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, s := range t.steps {
		if err := s.op(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", s.name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		s := t.steps[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			t.log.Warn().Err(err).Str("step", s.name).Msg("⚠️ compensação falhou (risco de inconsistência)")
		}
	}
}
