package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/listora/identity/pkg/sanitizer"
	"github.com/listora/identity/pkg/validator"
)

// LoginInput is the payload for password login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates by email and password. Unknown account, missing
// password hash and wrong password all return ErrInvalidCredentials so the
// response cannot be used to probe which emails are registered. A correct
// password on an unverified account returns ErrNotVerified; verification
// status is the only thing the caller may learn.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.Required("email", in.Email),
		validator.Required("password", in.Password),
	); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	// Federated/OTP-only accounts have no hash; treat exactly like a wrong
	// password.
	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	return s.issueSession(user)
}
