// Package auth implements the identity and credential lifecycle for the
// listing platform: signup with email verification, password login, Google
// federated login, one-time passcode login, password reset and change,
// profile image updates, and admin invitations.
//
// The package owns the User entity and its state transitions. Every flow is
// a short-lived request handler over a shared Storage; uniqueness constraints
// in the store arbitrate concurrent identical requests, and all transient
// secrets (verification token, OTP pair, reset pair) are cleared the moment
// they are consumed.
//
// Anti-enumeration is a hard requirement: login failures never reveal whether
// the email exists, OTP verification never reveals which check failed, and
// forgot-password answers identically for known and unknown addresses.
package auth
