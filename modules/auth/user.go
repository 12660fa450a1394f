package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is the coarse authorization level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the single persisted identity entity.
//
// PasswordHash is nil for accounts created through federated or OTP login.
// GoogleID links at most one Google identity per account. The three
// transient-secret pairs (VerificationToken, OTPCode/OTPExpiresAt,
// ResetToken/ResetExpiresAt) are set together and cleared together; a stale
// value surviving consumption is a correctness bug.
type User struct {
	ID                uuid.UUID
	Name              string
	Email             string
	PasswordHash      []byte
	GoogleID          string
	Role              Role
	IsVerified        bool
	VerificationToken string
	OTPCode           string
	OTPExpiresAt      *time.Time
	ResetToken        string
	ResetExpiresAt    *time.Time
	Image             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasPassword reports whether password login is possible for this account.
func (u *User) HasPassword() bool {
	return len(u.PasswordHash) > 0
}

// PublicUser is the projection returned to clients. It never carries the
// password hash or any transient secret.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
	Image string    `json:"image,omitempty"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Image: u.Image,
	}
}
