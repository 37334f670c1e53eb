// Package sqlerr handles database driver errors.
//
// It parses error codes from the database driver and converts them
// into application errors (e.g., a "check violation" becomes a
// "Bad Request" error) so driver details never reach clients.
package sqlerr

import "fmt"

// Code is a driver-independent classification of a database error.
type Code string

const (
	Other                    Code = "other"
	NotNullViolation         Code = "not_null_violation"
	ForeignKeyViolation      Code = "foreign_key_violation"
	UniqueViolation          Code = "unique_violation"
	CheckViolation           Code = "check_violation"
	ExclusionViolation       Code = "exclusion_violation"
	NumericOutOfRange        Code = "numeric_value_out_of_range"
	InvalidTextRep           Code = "invalid_text_representation"
	CharacterNotInRepertoire Code = "character_not_in_repertoire"
	ConnectionException      Code = "connection_exception"
	InsufficientResource     Code = "insufficient_resources"
)

// Severity mirrors the severity reported by Postgres.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is the normalized form of a driver error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code.
//
// Exact codes are matched first, then the two-character class.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22003":
		return NumericOutOfRange
	case "22P02":
		return InvalidTextRep
	case "22021":
		return CharacterNotInRepertoire
	}

	if len(sqlState) >= 2 {
		switch sqlState[:2] {
		case "08":
			return ConnectionException
		case "53":
			return InsufficientResource
		}
	}

	return Other
}

// MapSeverity maps the severity string reported by the server.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
