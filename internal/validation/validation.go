package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/deppfellow/todo-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that runs validator.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// StatusReporter is implemented by payloads whose binding and validation
// failures are reported with a status other than 400.
type StatusReporter interface {
	ValidationStatus() int
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates the struct from path params, query (GET/DELETE) and JSON body.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError with field-level errors if either step fails.
//
// The status is 400 unless payload implements StatusReporter.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	status := http.StatusBadRequest
	if sr, ok := payload.(StatusReporter); ok {
		status = sr.ValidationStatus()
	}

	if err := c.Bind(payload); err != nil {
		return newError(status, bindErrorMessage(err), false, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return newError(status, msg, true, fieldErrors)
	}

	return nil
}

func newError(status int, message string, override bool, fieldErrors []errs.FieldError) *errs.HTTPError {
	if status == http.StatusUnprocessableEntity {
		return errs.NewUnprocessableEntityError(message, override, fieldErrors)
	}
	return errs.NewBadRequestError(message, override, nil, fieldErrors, nil)
}

// bindErrorMessage extracts the client-facing part of an echo bind error.
func bindErrorMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request"
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Anything else is reported as a single, field-less failure.
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := fieldName(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", err.Param())

		case "nonul":
			msg = "must not contain NUL characters"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
