package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	DefaultReadTimeout     = 60 * time.Second
	DefaultWriteTimeout    = DefaultReadTimeout
	DefaultShutdownTimeout = 30 * time.Second
)

// Server wraps http.Server and shuts it down gracefully on SIGINT/SIGTERM.
type Server struct {
	*http.Server

	ShutdownTimeout time.Duration
	listener        net.Listener
}

// NewServer creates a Server with timeouts and handler.
func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Listen binds the listening socket. Serve calls it when it has not been called yet.
func (srv *Server) Listen() error {
	addr := srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen error: %w", err)
	}
	srv.listener = ln
	return nil
}

// BoundAddr returns the bound address, useful when listening on port 0.
func (srv *Server) BoundAddr() string {
	if srv.listener == nil {
		return srv.Addr
	}
	return srv.listener.Addr().String()
}

// Serve accepts connections until ctx is cancelled or a termination signal arrives,
// then drains in-flight requests for at most ShutdownTimeout.
func (srv *Server) Serve(ctx context.Context) error {
	if srv.listener == nil {
		if err := srv.Listen(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Server.Serve(srv.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		Sugar.Info("shutdown requested, graceful shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		Sugar.Errorf("HTTP server shutdown error: %v", err)
		return err
	}
	Sugar.Info("HTTP server shutdown success")
	return nil
}

// GraceServer starts an HTTP server with graceful shutdown.
func GraceServer(ctx context.Context, addr string, handler http.Handler) error {
	return NewServer(addr, handler, DefaultReadTimeout, DefaultWriteTimeout).Serve(ctx)
}
