// Package orbit adapts the orbit wallet bridge to the normalized provider
// contract. Orbit wraps every response in an envelope carrying an
// HTTP-status-like integer: 200 is success, 403 a user rejection, and
// anything else a protocol failure.
package orbit

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github/omnikey/wallet-session/internal/wallet/bridge"
	"github/omnikey/wallet-session/internal/wallet/detect"
	"github/omnikey/wallet-session/internal/wallet/host"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

// WalletName is the registry key of the orbit provider.
const WalletName provider.Name = "orbit"

const installURL = "https://orbit-wallet.example.org/get"

const (
	statusOK           = 200
	statusUserRejected = 403
)

const probeTimeout = 500 * time.Millisecond

// Config wires an orbit adapter into the host process.
type Config struct {
	// Locator probes for the orbit bridge daemon.
	Locator bridge.Locator

	// Env is the host environment handle. A nil Env (or Locator) makes
	// the adapter permanently unsupported.
	Env *host.Environment

	// Timeout bounds every native bridge call. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration

	// DetectInterval overrides the periodic probe interval.
	DetectInterval time.Duration

	// Clock drives availability detection. Tests inject a mock.
	Clock clock.Clock
}

// Wallet implements provider.Wallet for the orbit bridge.
type Wallet struct {
	mu         sync.Mutex
	native     bridge.Native
	readyState provider.ReadyState
	connecting bool
	account    provider.AccountKeys

	emitter    *provider.Emitter
	locator    bridge.Locator
	timeout    time.Duration
	stopDetect func()
}

var _ provider.Wallet = (*Wallet)(nil)

// New constructs the adapter and starts availability detection. Without a
// host environment or locator the adapter is unsupported from the start
// and detection never runs.
func New(cfg Config) *Wallet {
	w := &Wallet{
		emitter: provider.NewEmitter(),
		locator: cfg.Locator,
		timeout: cfg.Timeout,
	}

	if cfg.Env == nil || cfg.Locator == nil {
		w.readyState = provider.ReadyStateUnsupported
		w.stopDetect = func() {}
		return w
	}

	w.readyState = provider.ReadyStateNotDetected
	w.stopDetect = detect.Start(w.probe, detect.Options{
		Interval:     cfg.DetectInterval,
		Clock:        cfg.Clock,
		ContentReady: cfg.Env.ContentReady(),
		Loaded:       cfg.Env.Loaded(),
	})

	return w
}

// Close tears down availability detection.
func (w *Wallet) Close() {
	w.stopDetect()
}

func (w *Wallet) probe() bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	native, ok := w.locator.Lookup(ctx)
	if !ok {
		return false
	}

	// The orbit daemon spawns its backing wallet app on first use, so a
	// reachable daemon means loadable rather than fully installed.
	w.mu.Lock()
	w.native = native
	w.readyState = provider.ReadyStateLoadable
	w.mu.Unlock()

	w.emitter.Emit(provider.Event{
		Provider:   WalletName,
		Kind:       provider.EventReadyStateChange,
		ReadyState: provider.ReadyStateLoadable,
	})

	return true
}

func (w *Wallet) Name() provider.Name {
	return WalletName
}

func (w *Wallet) InstallURL() string {
	return installURL
}

func (w *Wallet) ReadyState() provider.ReadyState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.readyState
}

func (w *Wallet) Connecting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connecting
}

func (w *Wallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.account.Zero()
}

func (w *Wallet) PublicAccount() provider.AccountKeys {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.account
}

func (w *Wallet) On(kind provider.EventKind, fn provider.Listener) func() {
	return w.emitter.On(kind, fn)
}

func (w *Wallet) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, w.timeout)
}

func (w *Wallet) emitError(err error) {
	w.emitter.Emit(provider.Event{
		Provider: WalletName,
		Kind:     provider.EventError,
		Err:      err,
	})
}

// Connect establishes a session. Already connected or connecting is an
// idempotent no-op. If the bridge reports a stale session, it is torn
// down first so the handshake starts clean.
func (w *Wallet) Connect(ctx context.Context) error {
	w.mu.Lock()
	if w.connecting || !w.account.Zero() {
		w.mu.Unlock()
		return nil
	}
	if !w.readyState.Usable() {
		w.mu.Unlock()
		err := provider.NewError(provider.ErrNotReady, WalletName, nil)
		w.emitError(err)
		return err
	}
	native := w.native
	w.connecting = true
	w.mu.Unlock()

	account, err := w.doConnect(ctx, native)

	w.mu.Lock()
	w.connecting = false
	if err == nil {
		w.account = account
	}
	w.mu.Unlock()

	if err != nil {
		w.emitError(err)
		return err
	}

	w.emitter.Emit(provider.Event{
		Provider: WalletName,
		Kind:     provider.EventConnect,
		Account:  account,
	})

	return nil
}

func (w *Wallet) doConnect(ctx context.Context, native bridge.Native) (provider.AccountKeys, error) {
	ctx, cancel := w.callCtx(ctx)
	defer cancel()

	if raw, err := native.IsConnected(ctx); err == nil {
		var state struct {
			Connected bool `json:"connected"`
		}
		if decodeErr := decodeData(raw, &state); decodeErr == nil && state.Connected {
			if _, err := native.Disconnect(ctx); err != nil {
				return provider.AccountKeys{}, provider.NewError(provider.ErrConnection, WalletName,
					errors.Wrap(err, "failed to clear stale session"))
			}
		}
	}

	raw, err := native.Connect(ctx)
	if err != nil {
		return provider.AccountKeys{}, provider.NewError(provider.ErrConnection, WalletName, err)
	}

	var account struct {
		Account struct {
			PublicKey string `json:"publicKey"`
			Address   string `json:"address"`
			AuthKey   string `json:"authenticationKey"`
		} `json:"account"`
	}
	if err := decodeData(raw, &account); err != nil {
		return provider.AccountKeys{}, classify(provider.ErrConnection, err)
	}

	return provider.AccountKeys{
		PublicKey: null.StringFrom(account.Account.PublicKey),
		Address:   null.StringFrom(account.Account.Address),
		AuthKey:   null.StringFrom(account.Account.AuthKey),
	}, nil
}

// Disconnect always clears local session state and always emits exactly
// one disconnect event, even when the native call fails.
func (w *Wallet) Disconnect(ctx context.Context) error {
	w.mu.Lock()
	native := w.native
	hadSession := !w.account.Zero()
	w.account = provider.AccountKeys{}
	w.mu.Unlock()

	var result error
	if hadSession && native != nil {
		ctx, cancel := w.callCtx(ctx)
		defer cancel()

		if raw, err := native.Disconnect(ctx); err != nil {
			result = provider.NewError(provider.ErrDisconnection, WalletName, err)
		} else if err := decodeData(raw, nil); err != nil {
			result = classify(provider.ErrDisconnection, err)
		}
		if result != nil {
			w.emitError(result)
		}
	}

	w.emitter.Emit(provider.Event{
		Provider: WalletName,
		Kind:     provider.EventDisconnect,
	})

	return result
}

func (w *Wallet) sessionNative() (bridge.Native, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.account.Zero() {
		return nil, provider.NewError(provider.ErrNotConnected, WalletName, nil)
	}
	return w.native, nil
}

func (w *Wallet) SignTransaction(ctx context.Context, payload provider.Payload) ([]byte, error) {
	native, err := w.sessionNative()
	if err != nil {
		w.emitError(err)
		return nil, err
	}

	ctx, cancel := w.callCtx(ctx)
	defer cancel()

	raw, err := native.SignTransaction(ctx, payload)
	if err != nil {
		err = provider.NewError(provider.ErrSignTransaction, WalletName, err)
		w.emitError(err)
		return nil, err
	}

	var result struct {
		SignedTransaction string `json:"signedTransaction"`
	}
	if err := decodeData(raw, &result); err != nil {
		err = classify(provider.ErrSignTransaction, err)
		w.emitError(err)
		return nil, err
	}

	signed, err := hex.DecodeString(strings.TrimPrefix(result.SignedTransaction, "0x"))
	if err != nil {
		err = provider.NewError(provider.ErrSignTransaction, WalletName,
			errors.Wrap(err, "signed transaction is not valid hex"))
		w.emitError(err)
		return nil, err
	}

	return signed, nil
}

func (w *Wallet) SignAndSubmitTransaction(ctx context.Context, payload provider.Payload, opts provider.SubmitOptions) (string, error) {
	native, err := w.sessionNative()
	if err != nil {
		w.emitError(err)
		return "", err
	}

	ctx, cancel := w.callCtx(ctx)
	defer cancel()

	raw, err := native.SignAndSubmitTransaction(ctx, payload, opts)
	if err != nil {
		err = provider.NewError(provider.ErrSignAndSubmit, WalletName, err)
		w.emitError(err)
		return "", err
	}

	var result struct {
		TxnHash string `json:"txnHash"`
	}
	if err := decodeData(raw, &result); err != nil {
		err = classify(provider.ErrSignAndSubmit, err)
		w.emitError(err)
		return "", err
	}
	if result.TxnHash == "" {
		err = provider.NewError(provider.ErrSignAndSubmit, WalletName, errors.New("envelope carries no txnHash"))
		w.emitError(err)
		return "", err
	}

	return result.TxnHash, nil
}

func (w *Wallet) SignMessage(ctx context.Context, message string) (string, error) {
	native, err := w.sessionNative()
	if err != nil {
		w.emitError(err)
		return "", err
	}

	ctx, cancel := w.callCtx(ctx)
	defer cancel()

	raw, err := native.SignMessage(ctx, message)
	if err != nil {
		err = provider.NewError(provider.ErrSignMessage, WalletName, err)
		w.emitError(err)
		return "", err
	}

	var result struct {
		Signature string `json:"signature"`
	}
	if err := decodeData(raw, &result); err != nil {
		err = classify(provider.ErrSignMessage, err)
		w.emitError(err)
		return "", err
	}

	return result.Signature, nil
}

// statusError is orbit's in-envelope failure shape.
type statusError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *statusError) Error() string {
	return fmt.Sprintf("orbit bridge status %d: %s", e.Status, e.Message)
}

// decodeData unwraps an orbit envelope into out. out may be nil when the
// caller only cares about success. Envelope statuses other than 200 are
// returned as *statusError so classify can see the rejection status.
func decodeData(raw json.RawMessage, out any) error {
	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errors.Wrap(err, "unrecognized envelope")
	}
	if envelope.Status != statusOK {
		return &statusError{Status: envelope.Status, Message: envelope.Message}
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 {
		return errors.New("envelope carries no data")
	}
	return errors.Wrap(json.Unmarshal(envelope.Data, out), "unrecognized data shape")
}

// classify maps an envelope failure to the classified taxonomy, marking
// orbit's 403 status as a user rejection.
func classify(kind provider.ErrorKind, err error) *provider.Error {
	var stErr *statusError
	if errors.As(err, &stErr) && stErr.Status == statusUserRejected {
		return provider.NewRejectedError(kind, WalletName, err)
	}
	return provider.NewError(kind, WalletName, err)
}
