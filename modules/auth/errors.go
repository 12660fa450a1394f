package auth

import "errors"

// Account and credential errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account is not verified")
)

// Token and OTP errors. ErrInvalidOTP deliberately covers every OTP failure
// cause (no user, wrong code, expired) so callers cannot distinguish them.
var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrInvalidOTP   = errors.New("invalid or expired otp")
)

// Federated login errors.
var (
	ErrGoogleIDLinked      = errors.New("google account already linked to another user")
	ErrInvalidAssertion    = errors.New("invalid identity assertion")
	ErrMissingGoogleInput  = errors.New("either a credential or profile fields are required")
	ErrConflictingAccounts = errors.New("account conflict, retry the request")
)

// Request-gate errors used by the middleware layer.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
)
