package session

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

func PostSignTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.POST("/sign-transaction", postSignTransactionHandler(s))
}

func postSignTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSignTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		signed, err := s.Session.SignTransaction(ctx, provider.Payload(body.Payload))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to sign transaction")
			return mapSessionError(err)
		}

		response := &types.SignTransactionResponse{
			SignedPayload: base64.StdEncoding.EncodeToString(signed),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
