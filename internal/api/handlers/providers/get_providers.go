package providers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
)

func GetProvidersRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Provider.GET("", getProvidersHandler(s))
}

func getProvidersHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		infos := s.Session.Wallets()

		items := make([]types.ProviderResponse, 0, len(infos))
		for _, info := range infos {
			items = append(items, types.ProviderResponse{
				Name:       string(info.Name),
				ReadyState: info.ReadyState.String(),
				Connected:  info.Connected,
				InstallURL: info.InstallURL,
			})
		}

		response := &types.ProviderListResponse{
			Providers: items,
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
