package config

import (
	"time"

	"github.com/rs/zerolog"

	"github/omnikey/wallet-session/internal/util"
)

// EchoServer configures the HTTP facade.
type EchoServer struct {
	ListenAddress             string
	HideInternalServerErrors  bool
	EnableRecoverMiddleware   bool
	EnableRequestIDMiddleware bool
	EnableLoggerMiddleware    bool
}

// PathsServer configures filesystem locations.
type PathsServer struct {
	DataDir string
}

// LoggerServer configures zerolog.
type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

// BridgeProvider configures one wallet provider bridge.
type BridgeProvider struct {
	Enabled     bool
	Endpoint    string
	CallTimeout time.Duration
}

// SessionServer configures the session manager.
type SessionServer struct {
	AutoConnect    bool
	DetectInterval time.Duration
}

// Server is the aggregated service configuration.
type Server struct {
	Echo    EchoServer
	Paths   PathsServer
	Logger  LoggerServer
	Session SessionServer
	Nova    BridgeProvider
	Orbit   BridgeProvider
}

// DefaultServiceConfigFromEnv returns the server config as resolved from
// the process environment.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			ListenAddress:             util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrors:  util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERRORS", true),
			EnableRecoverMiddleware:   util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware: util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:    util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
		},
		Paths: PathsServer{
			DataDir: util.GetEnv("SERVER_PATHS_DATA_DIR", "/var/lib/wallet-session"),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Session: SessionServer{
			AutoConnect:    util.GetEnvAsBool("SERVER_SESSION_AUTO_CONNECT", true),
			DetectInterval: util.GetEnvAsDuration("SERVER_SESSION_DETECT_INTERVAL", time.Second),
		},
		Nova: BridgeProvider{
			Enabled:     util.GetEnvAsBool("SERVER_NOVA_ENABLED", true),
			Endpoint:    util.GetEnv("SERVER_NOVA_ENDPOINT", "http://127.0.0.1:8401"),
			CallTimeout: util.GetEnvAsDuration("SERVER_NOVA_CALL_TIMEOUT", 30*time.Second),
		},
		Orbit: BridgeProvider{
			Enabled:     util.GetEnvAsBool("SERVER_ORBIT_ENABLED", true),
			Endpoint:    util.GetEnv("SERVER_ORBIT_ENDPOINT", "http://127.0.0.1:8402"),
			CallTimeout: util.GetEnvAsDuration("SERVER_ORBIT_CALL_TIMEOUT", 30*time.Second),
		},
	}
}
