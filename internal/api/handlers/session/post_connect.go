package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/httperrors"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

func PostConnectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/connect", postConnectHandler(s))
}

func postConnectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostConnectPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		// An empty provider connects the current selection.
		name := provider.Name(body.Provider)
		if name != "" && !knownProvider(s, name) {
			return httperrors.ErrNotFoundProvider
		}

		if err := s.Session.Connect(ctx, name); err != nil {
			log.Debug().Err(err).Str("provider", name.String()).Msg("Failed to connect session")
			return mapSessionError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s.Session.State()))
	}
}
