package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
	"github/omnikey/wallet-session/internal/wallet/session"
)

func GetSessionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Session.GET("", getSessionHandler(s))
}

func getSessionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return util.ValidateAndReturn(c, http.StatusOK, sessionResponse(s.Session.State()))
	}
}

// sessionResponse converts a state snapshot into its public shape.
func sessionResponse(snap session.Snapshot) *types.SessionResponse {
	response := &types.SessionResponse{
		Selected:      snap.Selected.String(),
		Connected:     snap.Connected,
		Connecting:    snap.Connecting,
		Disconnecting: snap.Disconnecting,
		AutoConnect:   snap.AutoConnect,
	}

	if !snap.Account.Zero() {
		response.Account = &types.AccountResponse{
			PublicKey: snap.Account.PublicKey.Ptr(),
			Address:   snap.Account.Address.Ptr(),
			AuthKey:   snap.Account.AuthKey.Ptr(),
		}
	}

	return response
}
