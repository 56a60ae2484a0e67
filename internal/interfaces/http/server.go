package http

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/piyushjha0409/DockAI/internal/config"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/pkg/errors"
)

// Server wraps net/http with the configured timeouts and graceful shutdown.
type Server struct {
	srv *nethttp.Server
	log logging.Logger
}

// NewServer constructs the HTTP server around an assembled handler.
func NewServer(cfg config.ServerConfig, handler nethttp.Handler, log logging.Logger) *Server {
	return &Server{
		srv: &nethttp.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		log: log.Named("http-server"),
	}
}

// Start serves until the listener closes.  A graceful shutdown is not an
// error.
func (s *Server) Start() error {
	s.log.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return errors.Wrap(err, errors.ErrCodeInternal, "http server failed")
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("http server shutting down")
	if err := s.srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "http server shutdown failed")
	}
	return nil
}
