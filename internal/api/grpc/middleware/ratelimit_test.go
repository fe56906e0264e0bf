package middleware

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/peer"
)

func peerContext(t *testing.T, addr string) context.Context {
	t.Helper()
	tcp, err := net.ResolveTCPAddr("tcp", addr)
	require.NoError(t, err)
	return peer.NewContext(context.Background(), &peer.Peer{Addr: tcp})
}

func TestPeerLimiter_Limit(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	l := NewPeerLimiter(2, 2)
	l.now = func() time.Time { return now }

	alice := peerContext(t, "10.0.0.1:5000")
	bob := peerContext(t, "10.0.0.2:5000")

	require.NoError(t, l.Limit(alice))
	require.NoError(t, l.Limit(alice))
	assert.Error(t, l.Limit(alice), "burst exhausted")
	assert.Error(t, l.Limit(peerContext(t, "10.0.0.1:6000")), "ports of one host share a bucket")

	require.NoError(t, l.Limit(bob), "peers have separate buckets")

	now = now.Add(500 * time.Millisecond)
	assert.NoError(t, l.Limit(alice), "one token refilled")
	assert.Error(t, l.Limit(alice))
}

func TestPeerLimiter_EvictsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	l := NewPeerLimiter(10, 10)
	l.now = func() time.Time { return now }

	require.NoError(t, l.Limit(peerContext(t, "10.0.0.1:1")))
	require.NoError(t, l.Limit(peerContext(t, "10.0.0.2:1")))
	assert.Equal(t, 2, l.size())

	now = now.Add(idleBucketTTL + sweepInterval)
	require.NoError(t, l.Limit(peerContext(t, "10.0.0.3:1")))
	assert.Equal(t, 1, l.size())
}

func TestPeerLimiter_NoPeer(t *testing.T) {
	l := NewPeerLimiter(1, 0)

	require.NoError(t, l.Limit(context.Background()))
	assert.Error(t, l.Limit(context.Background()))
}
