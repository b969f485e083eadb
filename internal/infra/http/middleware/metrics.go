package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_saves_total",
			Help: "Lead save attempts by outcome",
		},
		[]string{"outcome"},
	)

	leadConversions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_conversions_total",
			Help: "Leads converted into opportunities",
		},
	)

	leadsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leads_by_status",
			Help: "Current number of leads per funnel status",
		},
		[]string{"status"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		// Padrão da rota (/leads/{id}/open) em vez do path cru, pra não explodir a cardinalidade
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// Recorder liga as métricas de domínio do workspace ao Prometheus.
type Recorder struct{}

func (Recorder) RecordLeadSave(outcome string) {
	leadSaves.WithLabelValues(outcome).Inc()
}

func (Recorder) RecordConversion() {
	leadConversions.Inc()
}

func (Recorder) SetLeadsByStatus(status string, count int) {
	leadsByStatus.WithLabelValues(status).Set(float64(count))
}
