package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/omnikey/wallet-session/internal/config"
	"github/omnikey/wallet-session/internal/data/local"
	"github/omnikey/wallet-session/internal/metrics"
	"github/omnikey/wallet-session/internal/util"
	"github/omnikey/wallet-session/internal/wallet/host"
	"github/omnikey/wallet-session/internal/wallet/provider"
	"github/omnikey/wallet-session/internal/wallet/session"
)

// Wallets is the ordered registry of provider adapters the session
// manager is allowed to drive. Order is what listing endpoints return.
type Wallets []provider.Wallet

type Router struct {
	Routes        []*echo.Route
	Root          *echo.Group
	Management    *echo.Group
	APIV1Session  *echo.Group
	APIV1Provider *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config  config.Server
	Clock   clock.Clock
	Local   local.Service
	Metrics *metrics.Service
	Env     *host.Environment
	Wallets Wallets
	Session *session.Manager
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	clock clock.Clock,
	local local.Service,
	metrics *metrics.Service,
	env *host.Environment,
	wallets Wallets,
	session *session.Manager,
) *Server {
	return &Server{
		Config:  cfg,
		Clock:   clock,
		Local:   local,
		Metrics: metrics,
		Env:     env,
		Wallets: wallets,
		Session: session,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Env != nil {
		// Flip the shutdown guard first so in-flight provider callbacks
		// stop publishing state changes while we tear down.
		s.Env.BeginShutdown()
	}

	if s.Session != nil {
		log.Debug().Msg("Closing wallet session manager")
		s.Session.Close()
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
