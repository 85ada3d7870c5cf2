package httperrors

import (
	"net/http"

	"github/omnikey/wallet-session/internal/types"
)

var (
	ErrPreconditionNotSelected = NewHTTPError(http.StatusPreconditionFailed, types.PublicHTTPErrorTypeNOTSELECTED, "No wallet provider is selected.")
	ErrPreconditionNotReady    = NewHTTPError(http.StatusPreconditionFailed, types.PublicHTTPErrorTypeNOTREADY, "The selected wallet provider is not installed or loadable.")
	ErrPreconditionNotConn     = NewHTTPError(http.StatusPreconditionFailed, types.PublicHTTPErrorTypeNOTCONNECTED, "No wallet session is connected.")
	ErrForbiddenUserRejected   = NewHTTPError(http.StatusForbidden, types.PublicHTTPErrorTypeUSERREJECTED, "The request was rejected in the wallet.")
	ErrBadGatewayBridge        = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeBRIDGEFAILURE, "The wallet bridge call failed.")
	ErrNotFoundProvider        = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeUNKNOWNPROVIDER, "The named wallet provider is not configured.")
)
