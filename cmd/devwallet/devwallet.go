package devwallet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github/omnikey/wallet-session/internal/config"
	"github/omnikey/wallet-session/internal/devwallet"
)

const (
	listenFlag = "listen"
	rejectFlag = "reject"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devwallet",
		Short: "Starts a local dev wallet bridge",
		Long: `Starts a local wallet bridge daemon for development

The daemon keeps an encrypted seed file in the data directory
and answers the nova bridge protocol. The seed password is
prompted interactively.`,
		Run: func(cmd *cobra.Command, _ []string) {
			listen, err := cmd.Flags().GetString(listenFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read listen flag")
			}

			reject, err := cmd.Flags().GetBool(rejectFlag)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to read reject flag")
			}

			runDevWallet(listen, reject)
		},
	}

	cmd.Flags().String(listenFlag, ":8401", "Listen address of the bridge daemon")
	cmd.Flags().Bool(rejectFlag, false, "Reject all connect and sign requests, for testing the rejection path")

	return cmd
}

func runDevWallet(listen string, reject bool) {
	cfg := config.DefaultServiceConfigFromEnv()
	seedPath := filepath.Join(cfg.Paths.DataDir, "devwallet-seed.json")

	password, err := promptPassword(seedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password")
	}

	var seed []byte
	if devwallet.SeedFileExists(seedPath) {
		seed, err = devwallet.OpenSeedFile(seedPath, password)
	} else {
		log.Info().Str("path", seedPath).Msg("Creating new seed file")
		seed, err = devwallet.CreateSeedFile(seedPath, password)
	}
	if err != nil {
		log.Fatal().Err(err).Str("path", seedPath).Msg("Failed to open seed file")
	}

	wallet, err := devwallet.NewWallet(seed)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to derive wallet from seed")
	}

	log.Info().
		Str("address", wallet.Address()).
		Str("listen", listen).
		Bool("reject", reject).
		Msg("Dev wallet bridge starting")

	if err := devwallet.NewServer(wallet, reject).Start(listen); err != nil {
		log.Fatal().Err(err).Msg("Dev wallet bridge stopped")
	}
}

func promptPassword(seedPath string) (string, error) {
	if devwallet.SeedFileExists(seedPath) {
		fmt.Fprint(os.Stderr, "Seed password: ")
	} else {
		fmt.Fprint(os.Stderr, "New seed password: ")
	}

	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	return string(password), nil
}
