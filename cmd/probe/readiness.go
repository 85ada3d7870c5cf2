package probe

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/omnikey/wallet-session/internal/config"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long: `Runs connectivity readiness probes

This command triggers the same readiness probes as in
/-/ready and prints the results to stdout. Fails with
non zero exitcode on encountered errors.

A typical usecase of this command are readiness probes
to hold off traffic until the server is fully available.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				verbose = false
			}

			runProbe(config.DefaultServiceConfigFromEnv(), "/-/ready", verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output")

	return cmd
}

// runProbe hits the local management endpoint and exits non-zero when
// it does not answer 200.
func runProbe(cfg config.Server, path string, verbose bool) {
	listenAddress := cfg.Echo.ListenAddress
	if strings.HasPrefix(listenAddress, ":") {
		listenAddress = "127.0.0.1" + listenAddress
	}

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	res, err := client.Get(fmt.Sprintf("http://%s%s", listenAddress, path))
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Probe request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read probe response")
	}

	if verbose {
		fmt.Println(string(body))
	}

	if res.StatusCode != http.StatusOK {
		log.Error().Int("status", res.StatusCode).Str("path", path).Msg("Probe failed")
		os.Exit(1)
	}
}
