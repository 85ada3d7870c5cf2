package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

func PostSignAndSubmitRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/sign-and-submit", postSignAndSubmitHandler(s))
}

func postSignAndSubmitHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSignAndSubmitPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		hash, err := s.Session.SignAndSubmitTransaction(ctx, provider.Payload(body.Payload), provider.SubmitOptions(body.Options))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to sign and submit transaction")
			return mapSessionError(err)
		}

		response := &types.SignAndSubmitResponse{
			Hash: hash,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
