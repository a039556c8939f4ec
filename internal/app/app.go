// Package app wires the core hub and the TCP transport together and
// drives the server's lifecycle.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"npchat/internal/config"
	"npchat/internal/core"
	"npchat/internal/transport/tcp"
)

// App wires together core and transport layers.
type App struct {
	server          *tcp.Server
	hub             *core.Hub
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(logger)
	server := tcp.NewServer(cfg, hub, logger)

	return &App{
		server:          server,
		hub:             hub,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}
}

// Run starts the TCP server and blocks until context cancellation or a
// fatal accept-loop error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		err := a.server.ListenAndServe()
		if errors.Is(err, tcp.ErrServerClosed) {
			err = nil
		}
		serverErr <- err
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down tcp server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
