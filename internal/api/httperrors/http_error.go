package httperrors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-openapi/swag"

	"github/omnikey/wallet-session/internal/types"
)

// HTTPError is the canonical error shape handlers return. The router's
// error handler serializes it as a types.PublicHTTPError.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error          // wrapped root cause, never serialized
	AdditionalData map[string]any // merged into the public payload
}

// NewHTTPError builds a public error with the given status code, stable
// machine-readable type and human-readable title.
func NewHTTPError(code int, errorType, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
	}
}

// NewHTTPErrorWithDetail additionally carries a request-specific detail
// string in the public payload.
func NewHTTPErrorWithDetail(code int, errorType, title, detail string) *HTTPError {
	err := NewHTTPError(code, errorType, title)
	err.AdditionalData = map[string]any{"detail": detail}
	return err
}

func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTPError %d (%s): %s: %v", *e.Code, *e.Type, *e.Title, e.Internal)
	}
	return fmt.Sprintf("HTTPError %d (%s): %s", *e.Code, *e.Type, *e.Title)
}

// MarshalJSON flattens the public payload and merges AdditionalData into
// it. Internal is never serialized.
func (e *HTTPError) MarshalJSON() ([]byte, error) {
	payload := map[string]any{
		"status": e.Code,
		"type":   e.Type,
		"title":  e.Title,
	}

	for key, value := range e.AdditionalData {
		if _, exists := payload[key]; !exists {
			payload[key] = value
		}
	}

	return json.Marshal(payload)
}

// HTTPValidationError adds per-field details to an HTTPError.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal error
}

// NewHTTPValidationError builds a public validation error.
func NewHTTPValidationError(code int, errorType, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(errorType),
				Title: swag.String(title),
			},
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s (%d fields)", *e.Code, *e.Type, *e.Title, len(e.ValidationErrors))
}

func (e *HTTPValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.PublicHTTPValidationError)
}

var (
	ErrNotFoundGeneric = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "The requested resource was not found.")
)
