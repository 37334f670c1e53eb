package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "description", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field or parameter.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRetry tells the client the request can be retried as is
	// after waiting, e.g. once a rate limit window has passed.
	ActionTypeRetry ActionType = "retry"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type returned to API clients.
//
// It implements the `error` interface and is serialized directly to JSON.
// Fields:
//   - Code: machine-friendly error code (e.g. "ITEM_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the client may show Message verbatim.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction (optional).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It only compares the type, not Code or Status, so
// errors.Is(err, &HTTPError{}) answers "is this an API error at all".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
// Example:
//
//	"Unprocessable Entity" -> "UNPROCESSABLE_ENTITY"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
