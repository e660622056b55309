package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/ludo-relay/internal/bot"
	"github.com/vovakirdan/ludo-relay/internal/config"
	"github.com/vovakirdan/ludo-relay/internal/core"
	"github.com/vovakirdan/ludo-relay/internal/metrics"
	transporthttp "github.com/vovakirdan/ludo-relay/internal/transport/http"
)

// App wires together core, transport and bot layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	bot             *bot.Bot
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	m := metrics.New()
	hub := core.NewHub(core.Options{
		ChatLogLimit:   cfg.ChatLogLimit,
		MaxRoomMembers: cfg.MaxRoomMembers,
		EvictByName:    cfg.EvictByName,
	}, logger, m)
	server := transporthttp.NewServer(hub, cfg, logger, m)

	a := &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}

	if cfg.BotToken != "" {
		b, err := bot.New(cfg.BotToken, cfg.WebAppURL, hub, logger)
		if err != nil {
			return nil, fmt.Errorf("init bot: %w", err)
		}
		a.bot = b
	} else {
		logger.Info().Msg("bot token not set, telegram bot disabled")
	}

	return a, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	botCtx, stopBot := context.WithCancel(ctx)
	defer stopBot()
	botDone := make(chan struct{})
	if a.bot != nil {
		go func() {
			defer close(botDone)
			a.bot.Run(botCtx)
		}()
	} else {
		close(botDone)
	}

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		stopBot()
		<-botDone
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		err := a.server.Shutdown(shutdownCtx)
		stopBot()
		<-botDone
		if err != nil {
			return err
		}

		rooms, conns := a.hub.Stats()
		a.log.Info().Int("rooms", rooms).Int("connections", conns).Msg("server stopped")
		return <-serverErr
	}
}
