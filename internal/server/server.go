package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-mgmt-agent/internal/config"
	"github.com/MKhiriev/go-mgmt-agent/internal/logger"
)

// Server runs the agent's HTTP listener as configured by the bootstrap
// configuration layer.
type Server struct {
	cfg    *config.AgentConfig
	http   *http.Server
	logger *logger.Logger
}

// NewServer wires the management router and the HTTP server from the
// validated configuration.
func NewServer(cfg *config.AgentConfig, log *logger.Logger) *Server {
	log.Info().
		Str("agentId", cfg.AgentID()).
		Str("protocol", cfg.Protocol()).
		Str("context", cfg.ContextPath()).
		Msg("creating agent server...")

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Handler: newRouter(cfg, log),
		},
		logger: log,
	}
}

// RunServer starts the listener and blocks until a termination signal
// arrives, then shuts the server down gracefully.
func (s *Server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

// Shutdown stops accepting new connections and drains in-flight
// requests.
func (s *Server) Shutdown() {
	if err := s.http.Shutdown(context.Background()); err != nil {
		s.logger.Info().Msgf("HTTP server Shutdown: %v\n", err)
	}
}

func (s *Server) run() error {
	listener, err := newListener(s.cfg)
	if err != nil {
		return err
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", listener.Addr().String()).Msg("Launching HTTP server")
	if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
