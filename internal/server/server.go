// Package server exposes pack generation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/tohu/internal/logger"
)

// Server is the HTTP endpoint.
type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

// NewServer builds the router for cfg.
func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg), log: logger.OrNop(cfg.Log)}
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for up to grace.
func (s *Server) Run(ctx context.Context, addr string, grace time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.log.Info("shutting down", "grace", grace.String())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}
