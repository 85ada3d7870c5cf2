package session

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
)

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/sign-message", postSignMessageHandler(s))
}

func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSignMessagePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		signature, err := s.Session.SignMessage(ctx, swag.StringValue(body.Message))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to sign message")
			return mapSessionError(err)
		}

		response := &types.SignMessageResponse{
			Signature: signature,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
