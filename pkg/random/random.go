package random

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"strings"
)

// Token returns a URL-safe opaque string backed by n random bytes.
// n must be at least 16 to keep tokens unguessable.
func Token(n int) (string, error) {
	if n < 16 {
		return "", ErrTokenTooShort
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// NumericCode returns a string of exactly digits decimal digits, drawn
// uniformly so leading zeros are as likely as any other digit.
func NumericCode(digits int) (string, error) {
	if digits < 4 || digits > 10 {
		return "", ErrInvalidCodeLength
	}

	var sb strings.Builder
	sb.Grow(digits)
	for i := 0; i < digits; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}

	return sb.String(), nil
}
