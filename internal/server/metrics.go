package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dtroode/authgate/internal/metrics"
	"github.com/dtroode/authgate/internal/model"
)

const readHeaderTimeout = 5 * time.Second

var _ model.Server = (*MetricsServer)(nil)

// MetricsServer exposes Prometheus metrics over plain HTTP at /metrics.
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a MetricsServer serving what g gathers on addr.
func NewMetricsServer(addr string, g prometheus.Gatherer) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Start serves until Stop is called.
func (s *MetricsServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve metrics: %w", err)
	}
	return nil
}

// Stop shuts the server down, waiting for active requests until ctx is done.
func (s *MetricsServer) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}
	return nil
}

// Address returns the configured listen address.
func (s *MetricsServer) Address() string {
	return s.server.Addr
}
