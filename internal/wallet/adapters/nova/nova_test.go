package nova_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/omnikey/wallet-session/internal/wallet/adapters/nova"
	"github/omnikey/wallet-session/internal/wallet/bridge"
	"github/omnikey/wallet-session/internal/wallet/host"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

type fakeNative struct {
	connectRes     json.RawMessage
	connectErr     error
	connectCalls   int
	disconnectRes  json.RawMessage
	disconnectErr  error
	disconnects    int
	isConnectedRes json.RawMessage
	signRes        json.RawMessage
	signErr        error
	signCalls      int
	submitRes      json.RawMessage
	messageRes     json.RawMessage
}

func (f *fakeNative) Connect(context.Context) (json.RawMessage, error) {
	f.connectCalls++
	return f.connectRes, f.connectErr
}

func (f *fakeNative) Disconnect(context.Context) (json.RawMessage, error) {
	f.disconnects++
	if f.disconnectRes == nil && f.disconnectErr == nil {
		return json.RawMessage(`{"result":{}}`), nil
	}
	return f.disconnectRes, f.disconnectErr
}

func (f *fakeNative) IsConnected(context.Context) (json.RawMessage, error) {
	if f.isConnectedRes == nil {
		return json.RawMessage(`{"result":false}`), nil
	}
	return f.isConnectedRes, nil
}

func (f *fakeNative) SignTransaction(context.Context, json.RawMessage) (json.RawMessage, error) {
	f.signCalls++
	return f.signRes, f.signErr
}

func (f *fakeNative) SignAndSubmitTransaction(context.Context, json.RawMessage, json.RawMessage) (json.RawMessage, error) {
	return f.submitRes, nil
}

func (f *fakeNative) SignMessage(context.Context, string) (json.RawMessage, error) {
	return f.messageRes, nil
}

type fakeLocator struct {
	native bridge.Native
	ok     bool
}

func (f *fakeLocator) Lookup(context.Context) (bridge.Native, bool) {
	return f.native, f.ok
}

const connectEnvelope = `{"result":{"publicKey":"0xpub","address":"0xaddr","authKey":"0xauth"}}`

// newInstalled returns an adapter whose synchronous construction probe
// already found the bridge.
func newInstalled(t *testing.T, native *fakeNative) *nova.Wallet {
	t.Helper()

	w := nova.New(nova.Config{
		Locator: &fakeLocator{native: native, ok: true},
		Env:     host.NewEnvironment(),
	})
	t.Cleanup(w.Close)

	require.Equal(t, provider.ReadyStateInstalled, w.ReadyState())
	return w
}

func TestConnectNormalizesAccount(t *testing.T) {
	native := &fakeNative{connectRes: json.RawMessage(connectEnvelope)}
	w := newInstalled(t, native)

	var events []provider.Event
	w.On(provider.EventConnect, func(evt provider.Event) { events = append(events, evt) })

	require.NoError(t, w.Connect(context.Background()))

	assert.True(t, w.Connected())
	account := w.PublicAccount()
	assert.Equal(t, "0xpub", account.PublicKey.String)
	assert.Equal(t, "0xaddr", account.Address.String)
	assert.Equal(t, "0xauth", account.AuthKey.String)

	require.Len(t, events, 1)
	assert.Equal(t, nova.WalletName, events[0].Provider)
	assert.Equal(t, account, events[0].Account)
}

func TestConnectIdempotent(t *testing.T) {
	native := &fakeNative{connectRes: json.RawMessage(connectEnvelope)}
	w := newInstalled(t, native)

	require.NoError(t, w.Connect(context.Background()))
	require.NoError(t, w.Connect(context.Background()))

	assert.Equal(t, 1, native.connectCalls)
}

func TestConnectNotReady(t *testing.T) {
	w := nova.New(nova.Config{
		Locator: &fakeLocator{ok: false},
		Env:     host.NewEnvironment(),
	})
	defer w.Close()

	require.Equal(t, provider.ReadyStateNotDetected, w.ReadyState())

	var errs []error
	w.On(provider.EventError, func(evt provider.Event) { errs = append(errs, evt.Err) })

	err := w.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrNotReady))
	assert.False(t, w.Connected())

	require.Len(t, errs, 1)
	assert.Equal(t, err, errs[0])
}

func TestConnectUnsupportedWithoutEnvironment(t *testing.T) {
	w := nova.New(nova.Config{})
	defer w.Close()

	assert.Equal(t, provider.ReadyStateUnsupported, w.ReadyState())

	err := w.Connect(context.Background())
	assert.True(t, provider.IsKind(err, provider.ErrNotReady))
}

func TestConnectUserRejection(t *testing.T) {
	native := &fakeNative{connectRes: json.RawMessage(`{"error":{"code":4001,"message":"user declined"}}`)}
	w := newInstalled(t, native)

	var errs []error
	w.On(provider.EventError, func(evt provider.Event) { errs = append(errs, evt.Err) })

	err := w.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrConnection))
	assert.True(t, provider.IsRejected(err))
	assert.False(t, w.Connected())
	require.Len(t, errs, 1)
}

func TestConnectTransportFailure(t *testing.T) {
	native := &fakeNative{connectErr: errors.New("connection refused")}
	w := newInstalled(t, native)

	err := w.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrConnection))
	assert.False(t, provider.IsRejected(err))
}

func TestConnectTearsDownStaleSession(t *testing.T) {
	native := &fakeNative{
		connectRes:     json.RawMessage(connectEnvelope),
		isConnectedRes: json.RawMessage(`{"result":true}`),
	}
	w := newInstalled(t, native)

	require.NoError(t, w.Connect(context.Background()))

	// The lingering bridge-side session was cleared before the fresh
	// handshake.
	assert.Equal(t, 1, native.disconnects)
	assert.Equal(t, 1, native.connectCalls)
	assert.True(t, w.Connected())
}

func TestDisconnectAlwaysEmitsExactlyOnce(t *testing.T) {
	native := &fakeNative{
		connectRes:    json.RawMessage(connectEnvelope),
		disconnectErr: errors.New("daemon gone"),
	}
	w := newInstalled(t, native)
	require.NoError(t, w.Connect(context.Background()))

	var disconnects, errs int
	w.On(provider.EventDisconnect, func(provider.Event) { disconnects++ })
	w.On(provider.EventError, func(provider.Event) { errs++ })

	err := w.Disconnect(context.Background())
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrDisconnection))

	// Local state is cleared and the disconnect is announced even though
	// the native call failed.
	assert.False(t, w.Connected())
	assert.Equal(t, 1, disconnects)
	assert.Equal(t, 1, errs)
}

func TestDisconnectWithoutSession(t *testing.T) {
	native := &fakeNative{}
	w := newInstalled(t, native)

	var disconnects int
	w.On(provider.EventDisconnect, func(provider.Event) { disconnects++ })

	require.NoError(t, w.Disconnect(context.Background()))
	assert.Equal(t, 0, native.disconnects)
	assert.Equal(t, 1, disconnects)
}

func TestSignTransactionRequiresSession(t *testing.T) {
	native := &fakeNative{}
	w := newInstalled(t, native)

	_, err := w.SignTransaction(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrNotConnected))
	assert.Equal(t, 0, native.signCalls)
}

func TestSignTransactionDecodesPayload(t *testing.T) {
	native := &fakeNative{
		connectRes: json.RawMessage(connectEnvelope),
		signRes:    json.RawMessage(`{"result":{"signedPayload":"c2lnbmVk"}}`),
	}
	w := newInstalled(t, native)
	require.NoError(t, w.Connect(context.Background()))

	signed, err := w.SignTransaction(context.Background(), json.RawMessage(`{"to":"0x1"}`))
	require.NoError(t, err)
	assert.Equal(t, []byte("signed"), signed)
}

func TestSignTransactionRejection(t *testing.T) {
	native := &fakeNative{
		connectRes: json.RawMessage(connectEnvelope),
		signRes:    json.RawMessage(`{"error":{"code":4001,"message":"user declined"}}`),
	}
	w := newInstalled(t, native)
	require.NoError(t, w.Connect(context.Background()))

	_, err := w.SignTransaction(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrSignTransaction))
	assert.True(t, provider.IsRejected(err))
}

func TestSignAndSubmitReturnsHash(t *testing.T) {
	native := &fakeNative{
		connectRes: json.RawMessage(connectEnvelope),
		submitRes:  json.RawMessage(`{"result":{"hash":"0xdeadbeef"}}`),
	}
	w := newInstalled(t, native)
	require.NoError(t, w.Connect(context.Background()))

	hash, err := w.SignAndSubmitTransaction(context.Background(), json.RawMessage(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", hash)
}

func TestSignMessageReturnsSignature(t *testing.T) {
	native := &fakeNative{
		connectRes: json.RawMessage(connectEnvelope),
		messageRes: json.RawMessage(`{"result":{"signature":"0xsig"}}`),
	}
	w := newInstalled(t, native)
	require.NoError(t, w.Connect(context.Background()))

	signature, err := w.SignMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "0xsig", signature)
}
