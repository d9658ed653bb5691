// Package sqlerr normalizes database driver errors.
//
// It maps raw Postgres SQLSTATE codes from pgx into application error
// categories and converts them into user-friendly HTTPErrors, so a unique
// constraint violation surfaces as "already exists" instead of a cryptic
// driver message.
package sqlerr
