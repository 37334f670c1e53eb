package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/todo-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode classifies the database error in err's chain, either an *Error
// or a raw *pgconn.PgError. It returns Other when there is none.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}

// ConvertPgError converts a raw Postgres error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates "application error codes" from DB errors,
// formatted <DOMAIN>_<ACTION>, e.g. items + InvalidTextRep => ITEM_INVALID.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	if isDataException(errType) {
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// isDataException reports whether the database refused a value sent by the
// client. Items carry no foreign keys, unique or check constraints, and the
// handlers reject a missing description before the insert.
func isDataException(code Code) bool {
	switch code {
	case NumericOutOfRange, InvalidTextRep, CharacterNotInRepertoire:
		return true
	}
	return false
}

// formatUserFriendlyMessage produces a client-facing message, never a log line.
func formatUserFriendlyMessage(sqlErr *Error) string {
	subject := "A value"
	if field := humanizeText(sqlErr.ColumnName); field != "" {
		subject = fmt.Sprintf("The %s value", field)
	}

	switch sqlErr.Code {
	case CharacterNotInRepertoire:
		return subject + " contains characters that cannot be stored"
	case NumericOutOfRange:
		return subject + " is out of range"
	case InvalidTextRep:
		return subject + " is malformed"
	default:
		return "An error occurred while processing your request"
	}
}

// humanizeText converts snake_case into Title Case ("is_done" -> "Is Done").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a low-level database error into an application error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: data exceptions become 400, the rest 500
//   - ErrNoRows (pgx or database/sql): 404
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		if !isDataException(sqlErr.Code) {
			return errs.NewInternalServerError()
		}

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		return errs.NewBadRequestError(formatUserFriendlyMessage(sqlErr), true, &errorCode, nil, nil)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
