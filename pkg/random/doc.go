// Package random generates cryptographically secure opaque tokens and
// numeric one-time codes.
//
// Opaque tokens back email-verification and password-reset links where the
// secret lives in the database and the emailed string only has to be
// unguessable. Numeric codes back OTP login where the user retypes the
// value by hand.
//
// Usage:
//
//	tok, err := random.Token(32)       // "xK3…", 43 chars of base64url
//	code, err := random.NumericCode(6) // "042913", leading zeros kept
//
// Both functions read from crypto/rand and fail only when the system
// entropy source is unavailable.
package random
