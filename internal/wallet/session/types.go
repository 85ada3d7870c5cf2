package session

import (
	"github/omnikey/wallet-session/internal/data/local"
	"github/omnikey/wallet-session/internal/wallet/host"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

// ErrorHandler receives classified adapter failures observed outside a
// direct call path (adapter error events). The default handler logs them.
type ErrorHandler func(err error)

// Recorder receives session instrumentation. Satisfied by
// metrics.Service; a nil Recorder disables instrumentation.
type Recorder interface {
	ObserveConnect(providerName string, err error)
	ObserveSign(providerName, operation string, err error)
	SetSessionActive(active bool)
}

// Config wires a session manager.
type Config struct {
	// Wallets is the ordered provider registry. Order is preserved for
	// display purposes.
	Wallets []provider.Wallet

	// Store persists the selected provider name across restarts. Nil
	// falls back to an in-memory store.
	Store local.Service

	// Env is the host environment handle whose shutdown guard gates
	// event delivery. Nil disables the guard.
	Env *host.Environment

	// AutoConnect silently reconnects a restored selection once its
	// provider becomes ready.
	AutoConnect bool

	// OnError handles adapter error events. Nil installs a logging
	// handler.
	OnError ErrorHandler

	// Metrics receives instrumentation. May be nil.
	Metrics Recorder
}

// Snapshot is the published read model of the session.
type Snapshot struct {
	Selected      provider.Name
	Account       provider.AccountKeys
	Connected     bool
	Connecting    bool
	Disconnecting bool
	AutoConnect   bool
}

// WalletInfo describes one registry entry for the published contract.
type WalletInfo struct {
	Name       provider.Name
	InstallURL string
	ReadyState provider.ReadyState
	Connected  bool
}
