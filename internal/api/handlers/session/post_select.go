package session

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/httperrors"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

func PostSelectRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/select", postSelectHandler(s))
}

func postSelectHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSelectPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		name := provider.Name(swag.StringValue(body.Provider))
		if !knownProvider(s, name) {
			return httperrors.ErrNotFoundProvider
		}

		if err := s.Session.Select(ctx, name); err != nil {
			log.Debug().Err(err).Str("provider", name.String()).Msg("Failed to select provider")
			return mapSessionError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s.Session.State()))
	}
}

func knownProvider(s *api.Server, name provider.Name) bool {
	for _, info := range s.Session.Wallets() {
		if info.Name == name {
			return true
		}
	}

	return false
}
