package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler is a liveness probe. It only signals that the
// process is up, readiness is covered by /-/ready.
func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy.")
	}
}
