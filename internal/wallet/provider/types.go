package provider

import (
	"encoding/json"

	"github.com/aarondl/null/v8"
)

// Name identifies a wallet provider. It is a distinct type so a provider
// name cannot be mixed up with an arbitrary string.
type Name string

func (n Name) String() string {
	return string(n)
}

// ReadyState describes whether a provider's native bridge is usable in the
// current host environment.
type ReadyState int

const (
	// ReadyStateNotDetected is the initial state: the bridge has not been
	// seen yet, detection is still running.
	ReadyStateNotDetected ReadyState = iota

	// ReadyStateInstalled means the bridge was detected and can be used.
	ReadyStateInstalled

	// ReadyStateLoadable means the bridge is not present yet but the
	// provider can bring it up on demand.
	ReadyStateLoadable

	// ReadyStateUnsupported is terminal: the host environment can never
	// support this provider. It is only set at construction time.
	ReadyStateUnsupported
)

func (s ReadyState) String() string {
	switch s {
	case ReadyStateInstalled:
		return "installed"
	case ReadyStateLoadable:
		return "loadable"
	case ReadyStateUnsupported:
		return "unsupported"
	default:
		return "not_detected"
	}
}

// Usable reports whether a connect attempt is allowed in this state.
func (s ReadyState) Usable() bool {
	return s == ReadyStateInstalled || s == ReadyStateLoadable
}

// AccountKeys is the account snapshot bound by an active session. All
// fields are invalid while no session is active and are populated together
// on a successful connect.
type AccountKeys struct {
	PublicKey null.String `json:"publicKey"`
	Address   null.String `json:"address"`
	AuthKey   null.String `json:"authKey"`
}

// Zero reports whether no account is bound.
func (a AccountKeys) Zero() bool {
	return !a.PublicKey.Valid && !a.Address.Valid && !a.AuthKey.Valid
}

// Payload is an opaque transaction payload. The session layer passes it
// through to the native bridge without interpreting it.
type Payload = json.RawMessage

// SubmitOptions are opaque submission options forwarded with
// SignAndSubmitTransaction. May be nil.
type SubmitOptions = json.RawMessage
