package session

import "errors"

var (
	ErrMissingSecret = errors.New("session: signing secret is required")
	ErrInvalidToken  = errors.New("session: invalid token")
	ErrTokenExpired  = errors.New("session: token expired")
)
