// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose migrations from an embedded filesystem, and error
// helpers the storage layer uses to turn SQLSTATE codes into domain errors.
// Unique-constraint violations matter here more than anywhere else in the
// system; they are the arbiter for concurrent signups and federated-login
// races.
package pg
