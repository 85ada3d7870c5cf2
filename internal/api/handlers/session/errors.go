package session

import (
	"github/omnikey/wallet-session/internal/api/httperrors"
	"github/omnikey/wallet-session/internal/wallet/provider"
)

// mapSessionError translates the wallet error taxonomy into the public
// HTTP error vocabulary. Unclassified errors pass through untouched and
// end up as a 500.
func mapSessionError(err error) error {
	if provider.IsRejected(err) {
		return httperrors.ErrForbiddenUserRejected
	}

	kind, ok := provider.KindOf(err)
	if !ok {
		return err
	}

	switch kind {
	case provider.ErrNotSelected:
		return httperrors.ErrPreconditionNotSelected
	case provider.ErrNotReady:
		return httperrors.ErrPreconditionNotReady
	case provider.ErrNotConnected:
		return httperrors.ErrPreconditionNotConn
	case provider.ErrConnection, provider.ErrDisconnection,
		provider.ErrSignTransaction, provider.ErrSignAndSubmit, provider.ErrSignMessage:
		return httperrors.ErrBadGatewayBridge
	default:
		return err
	}
}
