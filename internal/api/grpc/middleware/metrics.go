package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authgate/internal/metrics"
)

// Metrics is a unary interceptor that records request counts and latency.
type Metrics struct {
	metrics *metrics.Metrics
}

// NewMetrics creates a new Metrics middleware.
func NewMetrics(m *metrics.Metrics) *Metrics {
	return &Metrics{metrics: m}
}

// HandleGRPC observes the method, status code and duration of each call.
func (m *Metrics) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	m.metrics.ObserveRPC(info.FullMethod, status.Code(err).String(), time.Since(start))
	return resp, err
}
