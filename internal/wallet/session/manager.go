// Package session implements the wallet session lifecycle manager: it
// multiplexes the configured provider adapters, drives connect and
// disconnect against the single active one, and republishes normalized
// state changes.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github/omnikey/wallet-session/internal/data/local"
	"github/omnikey/wallet-session/internal/wallet/host"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

// deferredConnectTimeout bounds connect attempts triggered from readiness
// events rather than a caller-supplied context.
const deferredConnectTimeout = 30 * time.Second

// Manager owns the active adapter reference and the session state machine
// over idle/connecting/connected/disconnecting. All async operations are
// single-flight: a call while one is in flight is a no-op, never a race.
type Manager struct {
	mu             sync.Mutex
	wallets        []provider.Wallet
	byName         map[provider.Name]provider.Wallet
	selected       provider.Name
	active         provider.Wallet
	account        provider.AccountKeys
	connecting     bool
	disconnecting  bool
	pendingConnect bool
	autoConnect    bool
	unsubs         []func()

	subsMu sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int

	store   local.Service
	env     *host.Environment
	onError ErrorHandler
	metrics Recorder
	log     zerolog.Logger
}

// NewManager wraps the given adapter registry. It does not touch the
// persisted selection; call Restore for that.
func NewManager(cfg Config) *Manager {
	store := cfg.Store
	if store == nil {
		store = local.NewMemoryService()
	}

	logger := log.With().Str("component", "session_manager").Logger()

	onError := cfg.OnError
	if onError == nil {
		onError = func(err error) {
			logger.Error().Err(err).Msg("Wallet session error")
		}
	}

	m := &Manager{
		byName:      make(map[provider.Name]provider.Wallet),
		subs:        make(map[int]func(Snapshot)),
		autoConnect: cfg.AutoConnect,
		store:       store,
		env:         cfg.Env,
		onError:     onError,
		metrics:     cfg.Metrics,
		log:         logger,
	}
	m.setWalletsLocked(cfg.Wallets)

	return m
}

// setWalletsLocked installs the registry. Callers hold no lock during
// construction; afterwards m.mu is required.
func (m *Manager) setWalletsLocked(wallets []provider.Wallet) {
	m.wallets = make([]provider.Wallet, 0, len(wallets))
	for name := range m.byName {
		delete(m.byName, name)
	}
	for _, w := range wallets {
		if _, dup := m.byName[w.Name()]; dup {
			m.log.Warn().Str("provider", w.Name().String()).Msg("Duplicate provider name in registry, keeping first")
			continue
		}
		m.wallets = append(m.wallets, w)
		m.byName[w.Name()] = w
	}
}

// SetWallets replaces the registry. Adapter identity is preserved where
// name and readiness are unchanged, so observers holding references do
// not see spurious replacements. The active adapter, if still present
// under its name, stays attached.
func (m *Manager) SetWallets(wallets []provider.Wallet) {
	m.mu.Lock()

	merged := make([]provider.Wallet, 0, len(wallets))
	for _, w := range wallets {
		if existing, ok := m.byName[w.Name()]; ok && existing.ReadyState() == w.ReadyState() {
			merged = append(merged, existing)
			continue
		}
		merged = append(merged, w)
	}
	m.setWalletsLocked(merged)

	var detach provider.Wallet
	if m.selected != "" {
		if current, ok := m.byName[m.selected]; !ok || current != m.active {
			detach = m.detachLocked()
			m.selected = ""
		}
	}
	m.mu.Unlock()

	m.retireAdapter(detach)
	m.publish()
}

// Wallets returns a snapshot of the registry in its configured order.
func (m *Manager) Wallets() []WalletInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]WalletInfo, 0, len(m.wallets))
	for _, w := range m.wallets {
		infos = append(infos, WalletInfo{
			Name:       w.Name(),
			InstallURL: w.InstallURL(),
			ReadyState: w.ReadyState(),
			Connected:  w.Connected(),
		})
	}
	return infos
}

// State returns the published session snapshot.
func (m *Manager) State() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Selected:      m.selected,
		Account:       m.account,
		Connected:     m.connectedLocked(),
		Connecting:    m.connecting,
		Disconnecting: m.disconnecting,
		AutoConnect:   m.autoConnect,
	}
}

// connectedLocked holds the invariant: connected iff an active adapter is
// attached and it reports a bound account.
func (m *Manager) connectedLocked() bool {
	return m.active != nil && m.active.Connected()
}

// OnChange subscribes to published state changes and returns the
// unsubscribe function.
func (m *Manager) OnChange(fn func(Snapshot)) func() {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs[id] = fn

	return func() {
		m.subsMu.Lock()
		defer m.subsMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager) publish() {
	snapshot := m.State()

	m.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subsMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Restore loads the persisted selection and re-attaches it. With
// autoConnect enabled, a silent connect attempt follows as soon as the
// provider is ready.
func (m *Manager) Restore(ctx context.Context) error {
	name, err := m.store.GetSelectedProvider(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to read persisted selection")
	}
	if name == "" {
		return nil
	}

	m.mu.Lock()
	w, ok := m.byName[provider.Name(name)]
	if !ok {
		m.mu.Unlock()
		m.log.Warn().Str("provider", name).Msg("Persisted selection names an unknown provider, ignoring")
		return nil
	}

	detach := m.attachLocked(w)
	m.pendingConnect = m.autoConnect
	usable := m.autoConnect && w.ReadyState().Usable()
	m.mu.Unlock()

	m.retireAdapter(detach)

	if usable {
		go m.deferredConnect(w)
	}

	m.publish()
	return nil
}

// Select assigns the chosen provider without connecting. Selecting while
// connected is not rejected here; a later connect call is the one that
// turns the selection into a session. While a connect or disconnect is
// in flight the call is a no-op, same as the other session operations;
// swapping adapters under a live handshake would strand the session it
// produces.
func (m *Manager) Select(ctx context.Context, name provider.Name) error {
	m.mu.Lock()
	if m.connecting || m.disconnecting {
		m.mu.Unlock()
		return nil
	}
	w, ok := m.byName[name]
	if !ok {
		m.mu.Unlock()
		return provider.NewError(provider.ErrNotSelected, name, errors.Errorf("unknown provider %q", name))
	}

	var detach provider.Wallet
	if m.active != w {
		detach = m.attachLocked(w)
	}
	m.selected = name
	m.mu.Unlock()

	m.retireAdapter(detach)

	if err := m.store.SetSelectedProvider(ctx, name.String()); err != nil {
		m.log.Error().Err(err).Msg("Failed to persist selection")
	}

	m.publish()
	return nil
}

// Connect drives the active adapter's connect. A non-empty name selects
// that provider first; with an empty name the current selection is used.
// Single-flight: while connecting, disconnecting or already connected the
// call is a no-op. A not-ready provider fails with NotReady and clears
// the selection so a later autoConnect does not retry a hopeless
// provider.
func (m *Manager) Connect(ctx context.Context, name provider.Name) error {
	m.mu.Lock()
	if m.connecting || m.disconnecting || m.connectedLocked() {
		m.mu.Unlock()
		return nil
	}

	var detach provider.Wallet
	if name != "" && name != m.selected {
		w, ok := m.byName[name]
		if !ok {
			m.mu.Unlock()
			return provider.NewError(provider.ErrNotSelected, name, errors.Errorf("unknown provider %q", name))
		}
		detach = m.attachLocked(w)
		m.selected = name
	}

	if m.selected == "" || m.active == nil {
		m.mu.Unlock()
		m.retireAdapter(detach)
		return provider.NewError(provider.ErrNotSelected, "", nil)
	}

	w := m.active
	if state := w.ReadyState(); !state.Usable() {
		m.selected = ""
		retire := m.detachLocked()
		m.mu.Unlock()

		m.retireAdapter(detach)
		m.retireAdapter(retire)
		if err := m.store.SetSelectedProvider(ctx, ""); err != nil {
			m.log.Error().Err(err).Msg("Failed to clear persisted selection")
		}

		m.log.Info().
			Str("provider", w.Name().String()).
			Str("ready_state", state.String()).
			Str("install_url", w.InstallURL()).
			Msg("Provider is not ready, selection cleared")

		// The adapter never sees this attempt, so the dual delivery
		// (error handler + rejection) happens here.
		notReady := provider.NewError(provider.ErrNotReady, w.Name(), nil)
		m.onError(notReady)
		m.publish()
		return notReady
	}

	m.connecting = true
	m.mu.Unlock()

	m.retireAdapter(detach)
	if name != "" {
		if err := m.store.SetSelectedProvider(ctx, name.String()); err != nil {
			m.log.Error().Err(err).Msg("Failed to persist selection")
		}
	}

	err := w.Connect(ctx)

	m.mu.Lock()
	m.connecting = false
	m.pendingConnect = false
	moved := m.active != w
	if err != nil && !moved {
		// A failed connect never leaves the manager pointing at the
		// provider the user failed to connect to.
		m.selected = ""
		detach = m.detachLocked()
	}
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ObserveConnect(w.Name().String(), err)
	}

	if moved {
		// The adapter was detached while the handshake was in flight; a
		// session that landed on a retired adapter belongs to nobody.
		if err == nil {
			m.retireAdapter(w)
		}
		m.publish()
		return err
	}

	if err != nil {
		m.retireAdapter(detach)
		if storeErr := m.store.SetSelectedProvider(ctx, ""); storeErr != nil {
			m.log.Error().Err(storeErr).Msg("Failed to clear persisted selection")
		}
		m.publish()
		return err
	}

	m.publish()
	return nil
}

// Disconnect drives the active adapter's disconnect. Single-flight. The
// in-memory selection is cleared unconditionally once the adapter was
// told to disconnect; the persisted selection is only cleared on a clean
// disconnect.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	if m.connecting || m.disconnecting {
		m.mu.Unlock()
		return nil
	}

	w := m.active
	if w == nil {
		m.selected = ""
		m.mu.Unlock()
		m.publish()
		return nil
	}

	m.disconnecting = true
	m.mu.Unlock()

	err := w.Disconnect(ctx)

	// The in-memory selection goes away either way; the adapter already
	// settled its local state even when the native call failed.
	m.mu.Lock()
	m.disconnecting = false
	m.selected = ""
	m.detachLocked()
	m.mu.Unlock()

	if err == nil {
		if storeErr := m.store.SetSelectedProvider(ctx, ""); storeErr != nil {
			m.log.Error().Err(storeErr).Msg("Failed to clear persisted selection")
		}
	}

	m.publish()
	return err
}

// SignTransaction delegates to the active adapter.
func (m *Manager) SignTransaction(ctx context.Context, payload provider.Payload) ([]byte, error) {
	w, err := m.sessionWallet()
	if err != nil {
		return nil, err
	}

	signed, err := w.SignTransaction(ctx, payload)
	if m.metrics != nil {
		m.metrics.ObserveSign(w.Name().String(), "sign_transaction", err)
	}
	return signed, err
}

// SignAndSubmitTransaction delegates to the active adapter.
func (m *Manager) SignAndSubmitTransaction(ctx context.Context, payload provider.Payload, opts provider.SubmitOptions) (string, error) {
	w, err := m.sessionWallet()
	if err != nil {
		return "", err
	}

	hash, err := w.SignAndSubmitTransaction(ctx, payload, opts)
	if m.metrics != nil {
		m.metrics.ObserveSign(w.Name().String(), "sign_and_submit", err)
	}
	return hash, err
}

// SignMessage delegates to the active adapter.
func (m *Manager) SignMessage(ctx context.Context, message string) (string, error) {
	w, err := m.sessionWallet()
	if err != nil {
		return "", err
	}

	signature, err := w.SignMessage(ctx, message)
	if m.metrics != nil {
		m.metrics.ObserveSign(w.Name().String(), "sign_message", err)
	}
	return signature, err
}

// sessionWallet gates sign operations: a provider must be selected and
// the session connected. No native call is attempted otherwise.
func (m *Manager) sessionWallet() (provider.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == "" || m.active == nil {
		return nil, provider.NewError(provider.ErrNotSelected, "", nil)
	}
	if !m.active.Connected() {
		return nil, provider.NewError(provider.ErrNotConnected, m.active.Name(), nil)
	}
	return m.active, nil
}

// Close detaches the manager from its adapter. The session itself is left
// alone; use Disconnect for a full teardown.
func (m *Manager) Close() {
	m.mu.Lock()
	for _, off := range m.unsubs {
		off()
	}
	m.unsubs = nil
	m.active = nil
	m.mu.Unlock()
}

// attachLocked swaps the active adapter reference and rewires event
// subscriptions. It returns the previously attached adapter when that one
// still holds a session; the caller must retire it outside the lock.
func (m *Manager) attachLocked(w provider.Wallet) (detach provider.Wallet) {
	detach = m.detachLocked()

	m.active = w
	m.account = w.PublicAccount()
	m.unsubs = []func(){
		w.On(provider.EventConnect, m.handleConnect),
		w.On(provider.EventDisconnect, m.handleDisconnect),
		w.On(provider.EventError, m.handleError),
		w.On(provider.EventReadyStateChange, m.handleReadyStateChange),
	}

	return detach
}

// detachLocked unsubscribes from the active adapter. It returns the
// adapter when it still holds a session so the caller can disconnect it
// outside the lock; no dangling sessions across provider switches.
func (m *Manager) detachLocked() (retire provider.Wallet) {
	for _, off := range m.unsubs {
		off()
	}
	m.unsubs = nil

	if m.active != nil && m.active.Connected() {
		retire = m.active
	}
	m.active = nil
	m.account = provider.AccountKeys{}

	return retire
}

// retireAdapter disconnects a detached adapter that was still connected.
func (m *Manager) retireAdapter(w provider.Wallet) {
	if w == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), deferredConnectTimeout)
	defer cancel()

	if err := w.Disconnect(ctx); err != nil {
		m.log.Warn().Err(err).Str("provider", w.Name().String()).Msg("Failed to disconnect replaced adapter")
	}
}

func (m *Manager) handleConnect(evt provider.Event) {
	m.mu.Lock()
	m.account = evt.Account
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetSessionActive(true)
	}
	m.publish()
}

func (m *Manager) handleDisconnect(provider.Event) {
	m.mu.Lock()
	m.account = provider.AccountKeys{}
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetSessionActive(false)
	}

	// During host teardown the bridge disconnects are expected noise;
	// local state is still reset above.
	if m.env != nil && m.env.ShuttingDown() {
		return
	}
	m.publish()
}

func (m *Manager) handleError(evt provider.Event) {
	// Swallowed entirely while the shutdown guard is armed: torn-down
	// bridges reject their pending calls and none of it is actionable.
	if m.env != nil && m.env.ShuttingDown() {
		return
	}
	m.onError(evt.Err)
}

// handleReadyStateChange arms the deferred connect: when a restored
// selection's provider becomes usable and nothing is connected or in
// flight, a silent connect attempt starts.
func (m *Manager) handleReadyStateChange(evt provider.Event) {
	if !evt.ReadyState.Usable() {
		return
	}

	m.mu.Lock()
	w := m.active
	armed := m.pendingConnect && m.autoConnect &&
		w != nil && w.Name() == evt.Provider &&
		!m.connecting && !m.disconnecting && !m.connectedLocked()
	if armed {
		m.pendingConnect = false
	}
	m.mu.Unlock()

	if armed {
		go m.deferredConnect(w)
	}
	m.publish()
}

// deferredConnect is the autoConnect attempt. A failure resets the
// selection; the adapter's own error event still reaches the error
// handler, the manager just raises nothing on top of it.
func (m *Manager) deferredConnect(w provider.Wallet) {
	ctx, cancel := context.WithTimeout(context.Background(), deferredConnectTimeout)
	defer cancel()

	m.mu.Lock()
	if m.connecting || m.disconnecting || m.connectedLocked() || m.active != w {
		m.mu.Unlock()
		return
	}
	m.connecting = true
	m.pendingConnect = false
	m.mu.Unlock()

	err := w.Connect(ctx)

	m.mu.Lock()
	m.connecting = false
	moved := m.active != w
	var detach provider.Wallet
	if err != nil && !moved {
		m.selected = ""
		detach = m.detachLocked()
	}
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ObserveConnect(w.Name().String(), err)
	}

	if moved {
		if err == nil {
			m.retireAdapter(w)
		}
		m.publish()
		return
	}

	if err != nil {
		m.retireAdapter(detach)
		if storeErr := m.store.SetSelectedProvider(ctx, ""); storeErr != nil {
			m.log.Error().Err(storeErr).Msg("Failed to clear persisted selection")
		}
		m.log.Debug().Err(err).Str("provider", w.Name().String()).Msg("Silent reconnect failed, selection reset")
	}

	m.publish()
}
