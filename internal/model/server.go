package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the API is served on (plain or TLS).
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a long-running network server.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
