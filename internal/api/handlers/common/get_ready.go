package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// getReadyHandler is a readiness probe. It reports 521 while any server
// component is missing or the host environment started shutting down.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() || s.Env.ShuttingDown() {
			return c.String(521, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
