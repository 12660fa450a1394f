// Package session issues and verifies the stateless bearer tokens that prove
// a prior authentication. A token is an HS256-signed JWT whose subject is the
// user id, expiring a configurable interval (one day by default) after
// issuance. Nothing is stored server-side: verification is a pure function of
// the signing secret and the clock, so tokens cannot be revoked before expiry.
package session
