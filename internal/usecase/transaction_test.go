package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// TestTransactionRollsBackInReverseOrder - compensações rodam de trás pra frente
func TestTransactionRollsBackInReverseOrder(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	record := func(name string, err error) func(context.Context) error {
		return func(context.Context) error {
			calls = append(calls, name)
			return err
		}
	}

	err := usecase.NewTransaction(nil).
		Step("a", record("op a", nil), record("undo a", nil)).
		Step("b", record("op b", nil), record("undo b", nil)).
		Step("c", record("op c", boom), record("undo c", nil)).
		Execute(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "operation 'c' failed")
	assert.Equal(t, []string{"op a", "op b", "op c", "undo b", "undo a"}, calls)
}

func TestTransactionSuccessSkipsCompensations(t *testing.T) {
	compensated := false

	err := usecase.NewTransaction(nil).
		Step("a", func(context.Context) error { return nil }, func(context.Context) error {
			compensated = true
			return nil
		}).
		Execute(context.Background())

	assert.NoError(t, err)
	assert.False(t, compensated)
}

// TestTransactionContinuesWhenCompensationFails - falha na compensação só é logada
func TestTransactionContinuesWhenCompensationFails(t *testing.T) {
	undone := false
	boom := errors.New("boom")

	err := usecase.NewTransaction(nil).
		Step("a", func(context.Context) error { return nil }, func(context.Context) error {
			undone = true
			return nil
		}).
		Step("b", func(context.Context) error { return nil }, func(context.Context) error {
			return errors.New("compensação quebrou")
		}).
		Step("c", func(context.Context) error { return boom }, nil).
		Execute(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.True(t, undone)
}
