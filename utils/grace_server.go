package utils

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultReadTimeout  = 60 * time.Second
	defaultWriteTimeout = defaultReadTimeout
)

// Server wraps http.Server with signal-driven graceful shutdown. In-flight
// requests get a bounded grace period to finish; a hard ceiling forces the
// process to exit if draining stalls on a hung store call.
type Server struct {
	*http.Server

	grace      time.Duration
	kill       time.Duration
	onShutdown func()
}

// NewServer creates a Server. onShutdown runs after the listener drains
// (or the grace period lapses) and is where owned resources, such as the
// store connection, are closed.
func NewServer(addr string, handler http.Handler, grace, kill time.Duration, onShutdown func()) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
		},
		grace:      grace,
		kill:       kill,
		onShutdown: onShutdown,
	}
}

// ListenAndServe serves until SIGINT or SIGTERM arrives, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (srv *Server) ListenAndServe() error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		Infof("received %s, shutting down gracefully", sig)
	}

	forced := time.AfterFunc(srv.kill, func() {
		Errorf("could not close connections in time, forcefully shutting down")
		os.Exit(1)
	})
	defer forced.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), srv.grace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		Errorf("HTTP server shutdown error: %v", err)
	} else {
		Infof("closed out remaining connections")
	}

	if srv.onShutdown != nil {
		srv.onShutdown()
	}
	return nil
}

// GraceServer starts an HTTP server with graceful shutdown.
func GraceServer(addr string, handler http.Handler, grace, kill time.Duration, onShutdown func()) error {
	return NewServer(addr, handler, grace, kill, onShutdown).ListenAndServe()
}
