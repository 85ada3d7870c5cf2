package api

import (
	"github.com/benbjohnson/clock"

	"github/omnikey/wallet-session/internal/config"
	"github/omnikey/wallet-session/internal/data/local"
	"github/omnikey/wallet-session/internal/metrics"
	"github/omnikey/wallet-session/internal/wallet/adapters/nova"
	"github/omnikey/wallet-session/internal/wallet/adapters/orbit"
	"github/omnikey/wallet-session/internal/wallet/bridge"
	"github/omnikey/wallet-session/internal/wallet/host"
	"github/omnikey/wallet-session/internal/wallet/provider"
	"github/omnikey/wallet-session/internal/wallet/session"
)

// PROVIDERS - https://github.com/google/wire/blob/main/docs/guide.md#providers

//nolint:ireturn
func NewClock() clock.Clock {
	return clock.New()
}

//nolint:ireturn
func NewLocalService(cfg config.Server) (local.Service, error) {
	return local.NewFileService(cfg.Paths.DataDir)
}

func NewHostEnvironment() *host.Environment {
	return host.NewEnvironment()
}

// NewWallets assembles the provider adapter registry from the enabled
// bridge configurations. Disabled providers are simply absent, they do
// not show up as unsupported entries.
func NewWallets(cfg config.Server, env *host.Environment, clock clock.Clock) Wallets {
	wallets := make(Wallets, 0, 2)

	if cfg.Nova.Enabled {
		wallets = append(wallets, nova.New(nova.Config{
			Locator:        bridge.NewNovaLocator(cfg.Nova.Endpoint),
			Env:            env,
			Timeout:        cfg.Nova.CallTimeout,
			DetectInterval: cfg.Session.DetectInterval,
			Clock:          clock,
		}))
	}

	if cfg.Orbit.Enabled {
		wallets = append(wallets, orbit.New(orbit.Config{
			Locator:        bridge.NewOrbitLocator(cfg.Orbit.Endpoint),
			Env:            env,
			Timeout:        cfg.Orbit.CallTimeout,
			DetectInterval: cfg.Session.DetectInterval,
			Clock:          clock,
		}))
	}

	return wallets
}

func NewSessionManager(cfg config.Server, wallets Wallets, store local.Service, env *host.Environment, m *metrics.Service) *session.Manager {
	return session.NewManager(session.Config{
		Wallets:     []provider.Wallet(wallets),
		Store:       store,
		Env:         env,
		AutoConnect: cfg.Session.AutoConnect,
		Metrics:     m,
	})
}
