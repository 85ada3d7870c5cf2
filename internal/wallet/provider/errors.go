package provider

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies session and adapter failures.
type ErrorKind int

const (
	// ErrNotReady means the provider is neither installed nor loadable.
	ErrNotReady ErrorKind = iota

	// ErrNotSelected means no provider has been chosen.
	ErrNotSelected

	// ErrNotConnected means the operation requires an active session.
	ErrNotConnected

	// ErrConnection means the native connect call failed or was rejected.
	ErrConnection

	// ErrDisconnection means the native disconnect call failed.
	ErrDisconnection

	// ErrSignTransaction means the native sign call failed or returned an
	// unrecognized shape.
	ErrSignTransaction

	// ErrSignAndSubmit means the native sign-and-submit call failed or
	// returned an unrecognized shape.
	ErrSignAndSubmit

	// ErrSignMessage means the native message signing call failed or
	// returned an unrecognized shape.
	ErrSignMessage
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotReady:
		return "NotReady"
	case ErrNotSelected:
		return "NotSelected"
	case ErrNotConnected:
		return "NotConnected"
	case ErrConnection:
		return "ConnectionError"
	case ErrDisconnection:
		return "DisconnectionError"
	case ErrSignTransaction:
		return "SignTransactionError"
	case ErrSignAndSubmit:
		return "SignAndSubmitError"
	default:
		return "SignMessageError"
	}
}

// Error is a classified session failure. Rejected marks application-level
// rejections reported by the native provider (the user declined in the
// wallet) as opposed to transport or protocol failures.
type Error struct {
	Kind     ErrorKind
	Provider Name
	Rejected bool
	cause    error
}

// NewError wraps cause as a classified error. cause may be nil.
func NewError(kind ErrorKind, name Name, cause error) *Error {
	return &Error{Kind: kind, Provider: name, cause: cause}
}

// NewRejectedError marks a native user rejection.
func NewRejectedError(kind ErrorKind, name Name, cause error) *Error {
	return &Error{Kind: kind, Provider: name, Rejected: true, cause: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Provider != "" {
		msg = fmt.Sprintf("%s: provider %q", msg, e.Provider)
	}
	if e.Rejected {
		msg += ": rejected by user"
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the classification of err. ok is false for errors that
// did not originate in the session layer.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsRejected reports whether err carries a native user rejection.
func IsRejected(err error) bool {
	var classified *Error
	return errors.As(err, &classified) && classified.Rejected
}
