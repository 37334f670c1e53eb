package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/todo-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23514": CheckViolation,
		"23P01": ExclusionViolation,
		"22003": NumericOutOfRange,
		"22P02": InvalidTextRep,
		"22021": CharacterNotInRepertoire,
		"08006": ConnectionException,
		"53300": InsufficientResource,
		"42P01": Other,
		"":      Other,
	}

	for state, want := range tests {
		if got := MapCode(state); got != want {
			t.Errorf("MapCode(%q) = %q, want %q", state, got, want)
		}
	}
}

func TestMapSeverity(t *testing.T) {
	if got := MapSeverity("FATAL"); got != SeverityFatal {
		t.Errorf("MapSeverity(FATAL) = %q", got)
	}
	if got := MapSeverity("bogus"); got != SeverityError {
		t.Errorf("MapSeverity(bogus) = %q, want ERROR", got)
	}
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		table string
		code  Code
		want  string
	}{
		{"items", InvalidTextRep, "ITEM_INVALID"},
		{"items", CharacterNotInRepertoire, "ITEM_INVALID"},
		{"", NumericOutOfRange, "RECORD_INVALID"},
		{"items", UniqueViolation, "ITEM_ERROR"},
		{"items", Other, "ITEM_ERROR"},
	}

	for _, tt := range tests {
		if got := generateErrorCode(tt.table, tt.code); got != tt.want {
			t.Errorf("generateErrorCode(%q, %q) = %q, want %q", tt.table, tt.code, got, tt.want)
		}
	}
}

func TestErrCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", ConvertPgError(&pgconn.PgError{Code: "23505"}))
	if got := ErrCode(wrapped); got != UniqueViolation {
		t.Errorf("ErrCode = %q, want %q", got, UniqueViolation)
	}
	if got := ErrCode(fmt.Errorf("update: %w", &pgconn.PgError{Code: "22P02"})); got != InvalidTextRep {
		t.Errorf("ErrCode(raw pg error) = %q, want %q", got, InvalidTextRep)
	}
	if got := ErrCode(errors.New("plain")); got != Other {
		t.Errorf("ErrCode(plain) = %q, want %q", got, Other)
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "untranslatable character",
			err:        fmt.Errorf("insert item: %w", &pgconn.PgError{Code: "22021", TableName: "items", ColumnName: "description"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "ITEM_INVALID",
		},
		{
			name:       "malformed value",
			err:        &pgconn.PgError{Code: "22P02"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "RECORD_INVALID",
		},
		{
			name:       "constraint violation",
			err:        &pgconn.PgError{Code: "23505", TableName: "items", ConstraintName: "items_pkey"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "unmapped postgres error",
			err:        &pgconn.PgError{Code: "42P01"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
		{
			name:       "pgx no rows",
			err:        fmt.Errorf("item 3: %w", pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "database/sql no rows",
			err:        sql.ErrNoRows,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "http error passes through",
			err:        errs.NewItemNotFoundError(),
			wantStatus: http.StatusNotFound,
			wantCode:   errs.CodeItemNotFound,
		},
		{
			name:       "anything else",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			if !errors.As(HandleError(tt.err), &httpErr) {
				t.Fatalf("HandleError did not return *errs.HTTPError")
			}
			if httpErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", httpErr.Status, tt.wantStatus)
			}
			if httpErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", httpErr.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleErrorDataExceptionMessage(t *testing.T) {
	tests := []struct {
		err  *pgconn.PgError
		want string
	}{
		{&pgconn.PgError{Code: "22021", ColumnName: "description"}, "The Description value contains characters that cannot be stored"},
		{&pgconn.PgError{Code: "22003", ColumnName: "id"}, "The Id value is out of range"},
		{&pgconn.PgError{Code: "22P02"}, "A value is malformed"},
	}

	for _, tt := range tests {
		if got := HandleError(tt.err).Error(); got != tt.want {
			t.Errorf("HandleError(%s) message = %q, want %q", tt.err.Code, got, tt.want)
		}
	}
}
