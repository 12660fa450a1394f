package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an email address. Applied before every
// store lookup so "User@Example.com " and "user@example.com" hit the same row.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailLocalPart returns the part before the "@", or the whole string when no
// "@" is present. Used as the default display name for accounts provisioned
// from a bare email address.
func EmailLocalPart(email string) string {
	email = NormalizeEmail(email)
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
