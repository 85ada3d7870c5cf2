// Package command holds shared cobra plumbing for the CLI subcommands.
package command

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/router"
	"github/omnikey/wallet-session/internal/config"
)

// NewSubcommandGroup returns a command that only dispatches to its
// subcommands, printing usage when called bare.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: name,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes a full server (without starting its listener),
// runs closure against it and tears it down again. Meant for one-shot
// maintenance subcommands.
func WithServer(ctx context.Context, cfg config.Server, closure func(ctx context.Context, s *api.Server) error) error {
	s, err := api.InitNewServer(cfg)
	if err != nil {
		return err
	}
	router.Init(s)

	defer func() {
		for _, shutdownErr := range s.Shutdown(ctx) {
			log.Error().Err(shutdownErr).Msg("Failed to shutdown server component")
		}
	}()

	return closure(ctx, s)
}
