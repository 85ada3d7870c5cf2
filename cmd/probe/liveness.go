package probe

import (
	"github.com/spf13/cobra"
	"github/omnikey/wallet-session/internal/config"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long: `Runs connectivity liveness probes

This command triggers the same liveness probes as in
/-/healthy (apart from the actual server.ready probe)
and prints the results to stdout. Fails with non zero
exitcode on encountered errors.

A typical usecase of this command are liveness probes
to take action if dependant services are unstable.`,
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				verbose = false
			}

			runProbe(config.DefaultServiceConfigFromEnv(), "/-/healthy", verbose)
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output")

	return cmd
}
