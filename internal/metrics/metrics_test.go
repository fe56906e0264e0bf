package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authgate/internal/model"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: OutcomeSuccess},
		{err: model.ErrAuthentication, want: OutcomeDenied},
		{err: fmt.Errorf("wrapped: %w", model.ErrStaleRefreshToken), want: OutcomeDenied},
		{err: fmt.Errorf("%w: timeout", model.ErrUpstreamUnavailable), want: OutcomeUnavailable},
		{err: errors.New("boom"), want: OutcomeError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err))
	}
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAuth("login", nil)
	m.ObserveAuth("login", model.ErrAuthentication)
	m.ObserveAuth("login", model.ErrAuthentication)
	m.ObserveRPC("/authgate.Auth/Login", "OK", 10*time.Millisecond)

	assert.Equal(t, float64(1), promtest.ToFloat64(m.authEvents.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, float64(2), promtest.ToFloat64(m.authEvents.WithLabelValues("login", OutcomeDenied)))
	assert.Equal(t, float64(1), promtest.ToFloat64(m.rpcRequests.WithLabelValues("/authgate.Auth/Login", "OK")))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "authgate_auth_events_total")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAuth("login", nil)
		m.ObserveRPC("/m", "OK", time.Second)
	})
}
