// Package errs defines the error types returned to API clients.
//
// Every failure that reaches a client is shaped as an HTTPError so
// responses stay consistent: a machine-readable code, a human-readable
// message, the HTTP status, and optionally field-level validation errors.
// The global error handler in the middleware package is the single place
// that serializes these into JSON.
package errs
