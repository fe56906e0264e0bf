package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener a Server accepts connections on, plain
// or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running listener started and stopped by cmd/main.go.
// The gRPC gateway and the metrics endpoint both implement it.
type Server interface {
	// Start blocks until the server stops.
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
