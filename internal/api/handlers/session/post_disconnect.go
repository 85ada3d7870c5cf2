package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/util"
)

func PostDisconnectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/disconnect", postDisconnectHandler(s))
}

func postDisconnectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if err := s.Session.Disconnect(ctx); err != nil {
			log.Debug().Err(err).Msg("Failed to disconnect session")
			return mapSessionError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s.Session.State()))
	}
}
