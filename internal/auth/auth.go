// Package auth verifies bearer credentials and yields the authenticated
// principal.
//
// Tokens are HMAC-SHA256 signed JWTs carrying the user's id, email and
// role, verified against a single process-wide secret. Verification is
// pure: no database lookup happens here, callers that need fresher user
// state fetch it separately.
//
// Failures are returned as *errs.HTTPError values rather than raised, so
// the pipeline can forward the status verbatim and every failure path is
// testable as a plain return value.
package auth
