package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	tests := map[string]string{
		"Unprocessable Entity": "UNPROCESSABLE_ENTITY",
		"Not Found":            "NOT_FOUND",
		"ok":                   "OK",
	}

	for in, want := range tests {
		if got := MakeUpperCaseWithUnderscores(in); got != want {
			t.Errorf("MakeUpperCaseWithUnderscores(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"unprocessable", NewUnprocessableEntityError("bad body", false, nil), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"not found", NewNotFoundError("gone", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"item not found", NewItemNotFoundError(), http.StatusNotFound, CodeItemNotFound},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.Status, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestBadRequestCustomCode(t *testing.T) {
	code := "ITEM_INVALID"
	err := NewBadRequestError("bad", true, &code, []FieldError{{Field: "is_done", Error: "is required"}}, nil)

	if err.Code != code {
		t.Errorf("code = %q, want %q", err.Code, code)
	}
	if len(err.Errors) != 1 {
		t.Errorf("errors = %+v", err.Errors)
	}
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("get item: %w", NewItemNotFoundError())

	if !errors.Is(wrapped, &HTTPError{}) {
		t.Error("wrapped HTTPError should match errors.Is")
	}
	if errors.Is(errors.New("plain"), &HTTPError{}) {
		t.Error("plain error should not match")
	}

	var httpErr *HTTPError
	if !errors.As(wrapped, &httpErr) || httpErr.Message != "Item not found" {
		t.Errorf("errors.As = %+v", httpErr)
	}
}

func TestWithMessage(t *testing.T) {
	orig := NewTooManyRequestsError("slow down")
	copied := orig.WithMessage("later")

	if copied.Message != "later" || orig.Message != "slow down" {
		t.Errorf("orig %q, copy %q", orig.Message, copied.Message)
	}
	if copied.Action != orig.Action || copied.Status != orig.Status {
		t.Error("WithMessage should keep the remaining fields")
	}
}
