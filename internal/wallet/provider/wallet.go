package provider

import "context"

// Wallet is the normalized contract every provider adapter satisfies. The
// session manager only ever talks to this interface; translating a concrete
// bridge protocol into it is the adapter's job.
type Wallet interface {
	// Name returns the provider's unique name.
	Name() Name

	// InstallURL points the user at where to obtain the provider when it
	// is not detected in the host environment.
	InstallURL() string

	// ReadyState returns the current readiness of the native bridge.
	ReadyState() ReadyState

	// Connecting reports whether a connect call is in flight.
	Connecting() bool

	// Connected reports whether an account is currently bound. It says
	// nothing about transport health.
	Connected() bool

	// PublicAccount returns the bound account snapshot. All fields are
	// invalid while not connected.
	PublicAccount() AccountKeys

	// Connect establishes a session. Calling it while connected or while
	// a connect is already in flight is a no-op, not an error.
	Connect(ctx context.Context) error

	// Disconnect tears the session down. It always settles local state
	// and always emits a disconnect event, even when the native call
	// fails.
	Disconnect(ctx context.Context) error

	// SignTransaction signs the opaque payload with the bound account.
	SignTransaction(ctx context.Context, payload Payload) ([]byte, error)

	// SignAndSubmitTransaction signs and submits the opaque payload and
	// returns the submission hash. opts may be nil.
	SignAndSubmitTransaction(ctx context.Context, payload Payload, opts SubmitOptions) (string, error)

	// SignMessage signs an arbitrary message string.
	SignMessage(ctx context.Context, message string) (string, error)

	// On registers a listener for the given event kind and returns its
	// unsubscribe function.
	On(kind EventKind, fn Listener) (off func())
}
