// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures
// (FieldErrors for payloads, HTTPError for API responses)
// so that clients receive meaningful, actionable, and consistent
// error messages.
package errs
