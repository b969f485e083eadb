package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Pinger é satisfeito pelo *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ClosedChecker é satisfeito pelo *amqp091.Connection.
type ClosedChecker interface {
	IsClosed() bool
}

type HealthHandler struct {
	Preferences Pinger
	RabbitMQ    ClosedChecker
	Workspace   Workspace
	StartTime   time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(prefs Pinger, rabbitMQ ClosedChecker, ws Workspace) *HealthHandler {
	return &HealthHandler{
		Preferences: prefs,
		RabbitMQ:    rabbitMQ,
		Workspace:   ws,
		StartTime:   time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.Preferences != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Preferences.PingContext(ctx); err != nil {
			deps["preferences"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["preferences"] = "healthy"
		}
	} else {
		deps["preferences"] = "in-memory"
	}

	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	if h.Workspace != nil {
		if h.Workspace.Summary().Loading {
			deps["leads"] = "loading"
		} else {
			deps["leads"] = "healthy"
		}
	}

	status := "healthy"
	for _, v := range deps {
		if strings.HasPrefix(v, "unhealthy") {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
