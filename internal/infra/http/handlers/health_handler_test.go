package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeConn struct{ closed bool }

func (c fakeConn) IsClosed() bool { return c.closed }

func TestHealthDefaults(t *testing.T) {
	ws := newWorkspace(t, usecase.NeverFail)
	h := handlers.NewHealthHandler(nil, nil, ws)

	rec := do(t, http.HandlerFunc(h.Handle), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[handlers.HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "in-memory", resp.Dependencies["preferences"])
	assert.Equal(t, "not configured", resp.Dependencies["rabbitmq"])
	assert.Equal(t, "healthy", resp.Dependencies["leads"])
}

func TestHealthDegraded(t *testing.T) {
	tests := []struct {
		name  string
		prefs handlers.Pinger
		conn  handlers.ClosedChecker
	}{
		{"banco fora", fakePinger{err: errors.New("connection refused")}, fakeConn{}},
		{"rabbit fechado", fakePinger{}, fakeConn{closed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tt.prefs, tt.conn, nil)

			rec := do(t, http.HandlerFunc(h.Handle), http.MethodGet, "/health", "")

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Equal(t, "degraded", decode[handlers.HealthResponse](t, rec).Status)
		})
	}
}
