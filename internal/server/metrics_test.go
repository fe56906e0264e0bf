package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authgate/internal/metrics"
	"github.com/dtroode/authgate/internal/mocks"
)

func TestMetricsServer_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveRPC("/authgate.Auth/Login", "OK", 10*time.Millisecond)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewMetricsServer(":0", reg)
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(ln, nil).Once()

	served := make(chan error, 1)
	go func() { served <- srv.Start(sec) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/metrics")
		return err == nil
	}, time.Second, 10*time.Millisecond)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "authgate_grpc_requests_total")

	require.NoError(t, srv.Stop(context.Background()))
	assert.NoError(t, <-served)
}

func TestMetricsServer_Address(t *testing.T) {
	srv := NewMetricsServer(":9090", prometheus.NewRegistry())
	assert.Equal(t, ":9090", srv.Address())
}

func TestMetricsServer_Start_ListenError(t *testing.T) {
	srv := NewMetricsServer(":0", prometheus.NewRegistry())
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(nil, assert.AnError).Once()

	assert.ErrorIs(t, srv.Start(sec), assert.AnError)
}
