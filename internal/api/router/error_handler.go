package router

import (
	"errors"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api/httperrors"
	"github/omnikey/wallet-session/internal/types"
	"github/omnikey/wallet-session/internal/util"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig returns an echo error handler that
// serializes every error into the public HTTP error shape, keeping
// internal details out of the response body when configured to.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromContext(c.Request().Context())

		var code int
		var payload any

		var httpValidationError *httperrors.HTTPValidationError
		var httpError *httperrors.HTTPError
		var echoHTTPError *echo.HTTPError

		switch {
		case errors.As(err, &httpValidationError):
			code = int(*httpValidationError.Code)

			if httpValidationError.Internal != nil {
				log.Warn().Err(httpValidationError.Internal).Msg("Internal validation error")
				if config.HideInternalServerErrorDetails {
					httpValidationError.Internal = nil
				}
			}

			payload = httpValidationError
		case errors.As(err, &httpError):
			code = int(*httpError.Code)

			if httpError.Internal != nil {
				log.Warn().Err(httpError.Internal).Msg("Internal HTTP error")
				if config.HideInternalServerErrorDetails {
					httpError.Internal = nil
				}
			}

			payload = httpError
		case errors.As(err, &echoHTTPError):
			code = echoHTTPError.Code

			var title string
			if msg, ok := echoHTTPError.Message.(string); ok {
				title = msg
			} else {
				title = http.StatusText(echoHTTPError.Code)
			}

			payload = &types.PublicHTTPError{
				Code:  swag.Int64(int64(echoHTTPError.Code)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(title),
			}
		default:
			code = http.StatusInternalServerError

			title := http.StatusText(http.StatusInternalServerError)
			if !config.HideInternalServerErrorDetails {
				title = err.Error()
			} else {
				log.Error().Err(err).Msg("Internal server error")
			}

			payload = &types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(types.PublicHTTPErrorTypeGeneric),
				Title: swag.String(title),
			}
		}

		if writeErr := c.JSON(code, payload); writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
