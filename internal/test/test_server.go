package test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/router"
	"github/omnikey/wallet-session/internal/config"
	"github/omnikey/wallet-session/internal/data/local"
	"github/omnikey/wallet-session/internal/devwallet"
)

// TestSeed is the deterministic dev wallet seed used by all test
// bridges.
var TestSeed = []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

// WithTestServer creates a fully initialized server backed by an
// in-process dev wallet bridge and an in-memory selection store, runs
// closure against it and tears everything down again.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestServerConfig(t), closure)
}

// WithTestBridge starts an in-process dev wallet bridge and hands its
// base URL to closure.
func WithTestBridge(t *testing.T, reject bool, closure func(endpoint string)) {
	t.Helper()

	wallet, err := devwallet.NewWallet(TestSeed)
	require.NoError(t, err)

	bridge := httptest.NewServer(devwallet.NewServer(wallet, reject).Echo())
	defer bridge.Close()

	closure(bridge.URL)
}

// DefaultTestServerConfig returns the service config used by test
// servers: quiet logging, a fast probe interval and no auto connect so
// tests drive the lifecycle explicitly.
func DefaultTestServerConfig(t *testing.T) config.Server {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Echo.ListenAddress = ":0"
	cfg.Paths.DataDir = t.TempDir()
	cfg.Session.AutoConnect = false
	cfg.Session.DetectInterval = 10 * time.Millisecond
	cfg.Orbit.Enabled = false

	return cfg
}

// WithTestServerConfigurable is WithTestServer with a caller-supplied
// config. The nova endpoint is always pointed at the test bridge.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	WithTestBridge(t, false, func(endpoint string) {
		t.Helper()

		cfg.Nova.Endpoint = endpoint

		s, err := api.InitNewServerWithStore(cfg, local.NewMemoryService())
		require.NoError(t, err)

		router.Init(s)

		s.Env.MarkContentReady()
		s.Env.MarkLoaded()

		require.NoError(t, s.Session.Restore(context.Background()))

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			for _, err := range s.Shutdown(ctx) {
				t.Errorf("failed to shutdown server component: %v", err)
			}
		}()

		closure(s)
	})
}
