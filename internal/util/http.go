package util

import (
	"errors"
	"net/http"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/omnikey/wallet-session/internal/api/httperrors"
	"github/omnikey/wallet-session/internal/types"
)

// BindAndValidateBody binds the request body to v and runs its swagger
// validation, translating validation failures into the public HTTP
// validation error shape.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	binder, ok := c.Echo().Binder.(*echo.DefaultBinder)
	if !ok {
		return errors.New("unsupported echo binder")
	}

	if err := binder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(v)
}

// ValidateAndReturn validates the response payload before writing it,
// ensuring handlers never emit a response violating their own schema.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}

	return c.JSON(code, v)
}

func validatePayload(v runtime.Validatable) error {
	err := v.Validate(strfmt.Default)
	if err == nil {
		return nil
	}

	var compositeError *openapierrors.CompositeError
	if errors.As(err, &compositeError) {
		return formatValidationErrors(compositeError)
	}

	var validationError *openapierrors.Validation
	if errors.As(err, &validationError) {
		return formatValidationErrors(&openapierrors.CompositeError{Errors: []error{validationError}})
	}

	return err
}

func formatValidationErrors(composite *openapierrors.CompositeError) error {
	details := make([]*types.HTTPValidationErrorDetail, 0, len(composite.Errors))

	for _, err := range composite.Errors {
		var validationError *openapierrors.Validation
		if errors.As(err, &validationError) {
			details = append(details, &types.HTTPValidationErrorDetail{
				Key:   swag.String(validationError.Name),
				In:    swag.String(validationError.In),
				Error: swag.String(validationError.Error()),
			})
		}
	}

	validationErr := httperrors.NewHTTPValidationError(
		http.StatusBadRequest,
		types.PublicHTTPErrorTypeGeneric,
		"Validation failed",
		details,
	)
	validationErr.Internal = composite

	return validationErr
}
