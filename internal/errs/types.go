package errs

import (
	"net/http"
)

// Machine-readable codes for item errors.
const (
	CodeItemNotFound = "ITEM_NOT_FOUND"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
//   - action: optional client instruction
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
//
// Used when a request body or path parameter is missing, malformed or of
// the wrong type.
func NewUnprocessableEntityError(message string, override bool, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)),
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports optional custom code override similar to NewBadRequestError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewItemNotFoundError is the 404 returned when an id does not resolve
// to a stored item.
func NewItemNotFoundError() *HTTPError {
	code := CodeItemNotFound
	return NewNotFoundError("Item not found", true, &code)
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: "Wait before sending more requests",
		},
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
