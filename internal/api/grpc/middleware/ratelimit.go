package middleware

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
)

const (
	idleBucketTTL = 5 * time.Minute
	sweepInterval = time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PeerLimiter is a token bucket per client address and method. It satisfies
// the go-grpc-middleware ratelimit.Limiter interface.
type PeerLimiter struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

// NewPeerLimiter creates a limiter admitting rps requests per second with
// the given burst for each peer and method.
func NewPeerLimiter(rps float64, burst int) *PeerLimiter {
	if burst < 1 {
		burst = 1
	}
	return &PeerLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Limit rejects the call when the caller's bucket is empty.
func (l *PeerLimiter) Limit(ctx context.Context) error {
	key := peerHost(ctx) + " " + methodName(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if !b.limiter.AllowN(now, 1) {
		return fmt.Errorf("rate limit of %v rps exceeded", float64(l.rps))
	}
	return nil
}

// sweep drops buckets idle for longer than idleBucketTTL. Callers hold mu.
func (l *PeerLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleBucketTTL {
			delete(l.buckets, key)
		}
	}
}

func (l *PeerLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}

func methodName(ctx context.Context) string {
	method, ok := grpc.Method(ctx)
	if !ok {
		return ""
	}
	return method
}
