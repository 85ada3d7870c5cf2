package config

import "fmt"

// ModuleName is the service identifier used in version output and
// logging.
const ModuleName = "wallet-session"

// Build arguments, overridden via ldflags at build time.
var (
	Commit    = "local"
	BuildDate = "unknown"
)

// GetFormattedBuildArgs returns "<module> @ <commit> (<build date>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
