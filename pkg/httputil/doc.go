// Package httputil provides the response helpers shared by the HTTP
// handlers.
//
// # Overview
//
//   - [WriteJSON]: encode a value with a status code
//   - [WriteError]: encode an error as {"error": {"code": ..., "message": ...}}
//   - [StatusFor]: map an error to an HTTP status code
//
// # Status Codes
//
// Structured errors from package errors are mapped by their class:
//
//	ClassInvalid                  → 400 Bad Request
//	ClassNotFound                 → 404 Not Found
//	ClassUnavailable, TIMEOUT     → 504 Gateway Timeout
//	ClassUnavailable, otherwise   → 502 Bad Gateway
//	ClassInternal                 → 500 Internal Server Error
//
// A context.DeadlineExceeded anywhere in the chain also maps to 504.
package httputil
