package random

import "errors"

var (
	ErrTokenTooShort     = errors.New("random: token must be at least 16 bytes")
	ErrInvalidCodeLength = errors.New("random: code length must be between 4 and 10 digits")
)
