// Package handler turns HTTP requests into item service calls.
//
// Each endpoint is a typed function receiving an already bound and
// validated request struct; Handle and HandleNoContent adapt it to
// echo and write the result. Health and API docs live here too.
package handler
