package orbit_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/omnikey/wallet-session/internal/wallet/adapters/orbit"
	"github/omnikey/wallet-session/internal/wallet/bridge"
	"github/omnikey/wallet-session/internal/wallet/host"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

type fakeNative struct {
	connectRes     json.RawMessage
	isConnectedRes json.RawMessage
	signRes        json.RawMessage
	submitRes      json.RawMessage
	disconnects    int
}

func (f *fakeNative) Connect(context.Context) (json.RawMessage, error) {
	return f.connectRes, nil
}

func (f *fakeNative) Disconnect(context.Context) (json.RawMessage, error) {
	f.disconnects++
	return json.RawMessage(`{"status":200,"message":"ok"}`), nil
}

func (f *fakeNative) IsConnected(context.Context) (json.RawMessage, error) {
	if f.isConnectedRes == nil {
		return json.RawMessage(`{"status":200,"message":"ok","data":{"connected":false}}`), nil
	}
	return f.isConnectedRes, nil
}

func (f *fakeNative) SignTransaction(context.Context, json.RawMessage) (json.RawMessage, error) {
	return f.signRes, nil
}

func (f *fakeNative) SignAndSubmitTransaction(context.Context, json.RawMessage, json.RawMessage) (json.RawMessage, error) {
	return f.submitRes, nil
}

func (f *fakeNative) SignMessage(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"status":200,"message":"ok","data":{"signature":"0xsig"}}`), nil
}

type fakeLocator struct {
	native bridge.Native
}

func (f *fakeLocator) Lookup(context.Context) (bridge.Native, bool) {
	return f.native, f.native != nil
}

const connectEnvelope = `{"status":200,"message":"ok","data":{"account":{"publicKey":"0xpub","address":"0xaddr","authenticationKey":"0xauth"}}}`

func newLoadable(t *testing.T, native *fakeNative) *orbit.Wallet {
	t.Helper()

	w := orbit.New(orbit.Config{
		Locator: &fakeLocator{native: native},
		Env:     host.NewEnvironment(),
	})
	t.Cleanup(w.Close)

	require.Equal(t, provider.ReadyStateLoadable, w.ReadyState())
	return w
}

func TestDetectionReportsLoadable(t *testing.T) {
	// The orbit daemon spawns its app on demand; a reachable daemon is
	// loadable, not installed, and both count as usable.
	w := newLoadable(t, &fakeNative{connectRes: json.RawMessage(connectEnvelope)})
	assert.True(t, w.ReadyState().Usable())
}

func TestConnectNormalizesNestedAccount(t *testing.T) {
	w := newLoadable(t, &fakeNative{connectRes: json.RawMessage(connectEnvelope)})

	require.NoError(t, w.Connect(context.Background()))

	account := w.PublicAccount()
	assert.Equal(t, "0xpub", account.PublicKey.String)
	assert.Equal(t, "0xaddr", account.Address.String)
	assert.Equal(t, "0xauth", account.AuthKey.String)
}

func TestConnectUserRejection(t *testing.T) {
	native := &fakeNative{connectRes: json.RawMessage(`{"status":403,"message":"request denied"}`)}
	w := newLoadable(t, native)

	err := w.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrConnection))
	assert.True(t, provider.IsRejected(err))
	assert.False(t, w.Connected())
}

func TestConnectProtocolFailureIsNotRejection(t *testing.T) {
	native := &fakeNative{connectRes: json.RawMessage(`{"status":500,"message":"internal"}`)}
	w := newLoadable(t, native)

	err := w.Connect(context.Background())
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrConnection))
	assert.False(t, provider.IsRejected(err))
}

func TestConnectTearsDownStaleSession(t *testing.T) {
	native := &fakeNative{
		connectRes:     json.RawMessage(connectEnvelope),
		isConnectedRes: json.RawMessage(`{"status":200,"message":"ok","data":{"connected":true}}`),
	}
	w := newLoadable(t, native)

	require.NoError(t, w.Connect(context.Background()))
	assert.Equal(t, 1, native.disconnects)
	assert.True(t, w.Connected())
}

func TestSignTransactionDecodesHex(t *testing.T) {
	native := &fakeNative{
		connectRes: json.RawMessage(connectEnvelope),
		signRes:    json.RawMessage(`{"status":200,"message":"ok","data":{"signedTransaction":"0x7369676e6564"}}`),
	}
	w := newLoadable(t, native)
	require.NoError(t, w.Connect(context.Background()))

	signed, err := w.SignTransaction(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, []byte("signed"), signed)
}

func TestSignAndSubmitNormalizesHashField(t *testing.T) {
	native := &fakeNative{
		connectRes: json.RawMessage(connectEnvelope),
		submitRes:  json.RawMessage(`{"status":200,"message":"ok","data":{"txnHash":"0xdeadbeef"}}`),
	}
	w := newLoadable(t, native)
	require.NoError(t, w.Connect(context.Background()))

	hash, err := w.SignAndSubmitTransaction(context.Background(), json.RawMessage(`{}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", hash)
}

func TestSignMessageRequiresSession(t *testing.T) {
	w := newLoadable(t, &fakeNative{connectRes: json.RawMessage(connectEnvelope)})

	_, err := w.SignMessage(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.ErrNotConnected))
}
