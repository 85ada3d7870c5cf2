// Package handlers contains the route attachment for all API endpoints.
package handlers

import (
	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/handlers/common"
	"github/omnikey/wallet-session/internal/api/handlers/providers"
	"github/omnikey/wallet-session/internal/api/handlers/session"
)

// AttachAllRoutes attaches all registered routes to the server's router.
func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		common.GetMetricsRoute(s),
		providers.GetProvidersRoute(s),
		session.GetSessionRoute(s),
		session.PostSelectRoute(s),
		session.PostConnectRoute(s),
		session.PostDisconnectRoute(s),
		session.PostSignTransactionRoute(s),
		session.PostSignAndSubmitRoute(s),
		session.PostSignMessageRoute(s),
	}
}
