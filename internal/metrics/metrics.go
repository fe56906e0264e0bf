package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/authgate/internal/model"
)

// Outcome labels of the auth counter.
const (
	OutcomeSuccess     = "success"
	OutcomeDenied      = "denied"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Metrics holds the gateway collectors. A nil *Metrics records nothing.
type Metrics struct {
	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	authEvents  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rpcRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authgate_grpc_requests_total",
				Help: "Total number of gRPC requests.",
			},
			[]string{"method", "code"},
		),
		rpcDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "authgate_grpc_request_duration_seconds",
				Help:    "gRPC request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		authEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authgate_auth_events_total",
				Help: "Session lifecycle events by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
	reg.MustRegister(m.rpcRequests, m.rpcDuration, m.authEvents)
	return m
}

// ObserveRPC records a finished gRPC call.
func (m *Metrics) ObserveRPC(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveAuth records the outcome of a session operation.
func (m *Metrics) ObserveAuth(operation string, err error) {
	if m == nil {
		return
	}
	m.authEvents.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome classifies err into an auth counter label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case model.IsAuthFailure(err):
		return OutcomeDenied
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
