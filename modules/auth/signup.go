package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/listora/identity/pkg/random"
	"github.com/listora/identity/pkg/sanitizer"
	"github.com/listora/identity/pkg/validator"
)

// SignupInput is the payload for account creation.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates an unverified account and emails a verification link. No
// session token is issued: the account cannot log in until the link is
// followed. The email send is fire-and-forget and cannot fail the signup.
func (s *Service) Signup(ctx context.Context, in SignupInput) (PublicUser, error) {
	in.Email = sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.Required("name", in.Name),
		validator.ValidEmail("email", in.Email),
		validator.MinLength("password", in.Password, 8),
	); err != nil {
		return PublicUser{}, err
	}

	if _, err := s.store.GetUserByEmail(ctx, in.Email); err == nil {
		return PublicUser{}, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return PublicUser{}, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	token, err := random.Token(32)
	if err != nil {
		return PublicUser{}, fmt.Errorf("generate verification token: %w", err)
	}

	user := &User{
		ID:                uuid.New(),
		Name:              in.Name,
		Email:             in.Email,
		PasswordHash:      hash,
		Role:              RoleUser,
		IsVerified:        false,
		VerificationToken: token,
	}

	// The unique index on email is the final word: a racing duplicate signup
	// loses here and gets the same ErrEmailAlreadyExists as the check above.
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return PublicUser{}, ErrEmailAlreadyExists
		}
		return PublicUser{}, fmt.Errorf("create user: %w", err)
	}

	s.mail.Enqueue(s.verificationEmail(user.Email, user.Name, token))
	s.logger.InfoContext(ctx, "user signed up",
		slog.String("user_id", user.ID.String()),
	)

	return user.Public(), nil
}

// VerifyEmail consumes a verification token: marks the account verified and
// clears the token so it cannot be replayed.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.store.GetUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("lookup verification token: %w", err)
	}

	user.IsVerified = true
	user.VerificationToken = ""

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("mark user verified: %w", err)
	}

	s.logger.InfoContext(ctx, "email verified",
		slog.String("user_id", user.ID.String()),
	)

	return nil
}
