//go:build wireinject

package api

import (
	"github.com/google/wire"

	"github/omnikey/wallet-session/internal/config"
	"github/omnikey/wallet-session/internal/data/local"
	"github/omnikey/wallet-session/internal/metrics"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewClock,
	NewHostEnvironment,
	NewWallets,
	NewSessionManager,
	metrics.New,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewLocalService)
	return new(Server), nil
}

// InitNewServerWithStore returns a new Server instance backed by the
// given selection store. Used by tests to avoid touching the filesystem.
func InitNewServerWithStore(
	_ config.Server,
	_ local.Service,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
