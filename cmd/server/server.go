package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/router"
	"github/omnikey/wallet-session/internal/config"
	"github/omnikey/wallet-session/internal/util"
)

const shutdownTimeout = 30 * time.Second

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the stateless RESTful JSON server

Requires configuration through ENV and
and a reachable wallet bridge daemon.`,
		Run: func(_ *cobra.Command, _ []string) {
			runServer()
		},
	}
}

func runServer() {
	util.TryLoadDotEnv(".env")

	cfg := config.DefaultServiceConfigFromEnv()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	router.Init(s)

	// The registry is wired, routes are attached: the analog of the
	// document becoming interactive.
	s.Env.MarkContentReady()

	go func() {
		if err := s.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info().Msg("Server closed")
			} else {
				log.Fatal().Err(err).Msg("Failed to start server")
			}
		}
	}()

	// Restore a persisted selection once the listener is up; with auto
	// connect enabled this silently re-establishes the last session.
	restoreCtx, restoreCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	if err := s.Session.Restore(restoreCtx); err != nil {
		log.Error().Err(err).Msg("Failed to restore wallet session")
	}
	restoreCancel()

	s.Env.MarkLoaded()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, err := range s.Shutdown(ctx) {
		log.Error().Err(err).Msg("Failed to shutdown server component")
	}
}
