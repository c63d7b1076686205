package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/f4ah6o/webserve-go/internal/config"
	"github.com/f4ah6o/webserve-go/internal/mimetype"
)

// Server is a bound, not yet serving, static file server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// New binds cfg.Addr and prepares the handler for cfg.Root.
func New(cfg config.Config, types *mimetype.Table) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}

	return &Server{
		httpServer: &http.Server{
			Handler: Logger(NewHandler(cfg.Root, types)),
		},
		listener: listener,
	}, nil
}

// URL returns the base URL of the server, always ending in "/".
// Wildcard listen addresses are reported as localhost.
func (s *Server) URL() string {
	addr := s.listener.Addr().String()
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/"
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// Serve accepts connections until the listener fails or Shutdown is called.
// Each connection is handled on its own goroutine.
func (s *Server) Serve() error {
	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for active requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	// Serve may never have been called, in which case the listener is still ours.
	_ = s.listener.Close()
	return err
}
