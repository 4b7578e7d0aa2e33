package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nrjt/eduplatform/internal/logging"
	"github.com/nrjt/eduplatform/internal/portal"
	"github.com/nrjt/eduplatform/internal/types"
)

// sweepInterval is how often idle sessions are dropped
const sweepInterval = time.Minute

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	portal *portal.Portal
	config *types.APIConfig
}

// NewServer creates a new server
func NewServer(p *portal.Portal, config *types.APIConfig) *Server {
	router := NewRouter(p)

	return &Server{
		router: router.SetupRoutes(),
		portal: p,
		config: config,
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
// Idle sessions are swept while the server runs.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.sweepSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		logging.L().Info("HTTP server listening",
			zap.String("addr", s.Addr()),
			zap.String("page", fmt.Sprintf("http://%s/", s.Addr())),
			zap.String("api", fmt.Sprintf("http://%s/api/v1/", s.Addr())))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve HTTP: %w", err)
	case <-ctx.Done():
	}

	logging.L().Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := s.portal.Sessions().Sweep(); dropped > 0 {
				logging.L().Debug("expired sessions dropped", zap.Int("count", dropped))
			}
		}
	}
}

// GetRouter returns the configured router
func (s *Server) GetRouter() *chi.Mux {
	return s.router
}

// Stop closes the resource store
func (s *Server) Stop() error {
	return s.portal.Close()
}
