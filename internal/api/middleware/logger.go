package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github/omnikey/wallet-session/internal/util"
)

type LoggerConfig struct {
	Skipper echoMiddleware.Skipper
	Level   zerolog.Level
}

// Logger returns a middleware that attaches a request-scoped zerolog
// logger to the context and emits one line per completed request.
func Logger(config LoggerConfig) echo.MiddlewareFunc {
	skipper := config.Skipper
	if skipper == nil {
		skipper = echoMiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			logger := log.With().
				Str("request_id", id).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()

			c.SetRequest(req.WithContext(util.WithLogger(req.Context(), &logger)))

			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler commit the response before we
				// read the status code.
				c.Error(err)
			}

			logger.WithLevel(config.Level).
				Int("status", c.Response().Status).
				Dur("duration_ms", time.Since(start)).
				Int64("bytes_out", c.Response().Size).
				Msg("Request handled")

			return nil
		}
	}
}
