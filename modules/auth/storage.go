package auth

import (
	"context"

	"github.com/google/uuid"
)

// Storage is the persistent credential store. Implementations must enforce
// uniqueness on email and on google_id and surface violations as
// ErrEmailAlreadyExists / ErrGoogleIDLinked; those constraints are the race
// arbiter for concurrent signups and federated logins.
//
// Lookups return ErrUserNotFound when no row matches.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*User, error)
	GetUserByResetToken(ctx context.Context, token string) (*User, error)
}
