package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/handlers"
	"github/omnikey/wallet-session/internal/api/middleware"
)

// Init attaches the echo instance, the route groups and all handlers
// to the given server.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.Logger.SetOutput(&echoLogger{level: s.Config.Logger.RequestLevel})

	s.Echo.HTTPErrorHandler = HTTPErrorHandlerWithConfig(HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrors,
	})

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.Logger(middleware.LoggerConfig{
			Level: s.Config.Logger.RequestLevel,
		}))
	}

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		Root:          s.Echo.Group(""),
		Management:    s.Echo.Group("/-"),
		APIV1Session:  s.Echo.Group("/api/v1/session"),
		APIV1Provider: s.Echo.Group("/api/v1/providers"),
	}

	handlers.AttachAllRoutes(s)
}

// echoLogger funnels echo's internal logger output into zerolog.
type echoLogger struct {
	level zerolog.Level
}

func (l *echoLogger) Write(p []byte) (int, error) {
	log.WithLevel(l.level).Msgf("%s", p)
	return len(p), nil
}
