package util

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// TryLoadDotEnv merges a dotenv file into the process environment if one
// exists at path. Missing files are fine; anything else is logged.
func TryLoadDotEnv(path string) {
	if err := gotenv.Load(path); err != nil {
		if !strings.Contains(err.Error(), "no such file") {
			log.Warn().Str("path", path).Err(err).Msg("Failed to load dotenv file")
		}
		return
	}
	log.Debug().Str("path", path).Msg("Loaded dotenv file")
}

// GetEnv returns the env value for key or defaultVal when unset.
func GetEnv(key string, defaultVal string) string {
	env.SetDefault(key, defaultVal)
	return env.GetString(key)
}

// GetEnvAsInt returns the env value for key parsed as int, or defaultVal
// when unset or unparsable.
func GetEnvAsInt(key string, defaultVal int) int {
	env.SetDefault(key, defaultVal)
	return env.GetInt(key)
}

// GetEnvAsBool returns the env value for key parsed as bool, or
// defaultVal when unset or unparsable.
func GetEnvAsBool(key string, defaultVal bool) bool {
	env.SetDefault(key, defaultVal)
	return env.GetBool(key)
}

// GetEnvAsDuration returns the env value for key parsed as a duration
// string, or defaultVal when unset or unparsable.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	env.SetDefault(key, defaultVal)
	return env.GetDuration(key)
}
