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

// ForgotPassword starts a self-service reset. The caller gets the same
// generic acknowledgement whether or not the email is registered; when it is,
// a reset link valid for one hour goes out by email.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	if err := validator.Apply(validator.ValidEmail("email", emailAddr)); err != nil {
		return err
	}

	user, err := s.store.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil // identical outcome for unknown addresses
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token, err := random.Token(32)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expiresAt := s.now().Add(s.resetTTL)

	user.ResetToken = token
	user.ResetExpiresAt = &expiresAt

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	s.mail.Enqueue(s.resetEmail(user.Email, user.Name, token))
	s.logger.InfoContext(ctx, "password reset requested",
		slog.String("user_id", user.ID.String()),
	)

	return nil
}

// VerifyResetToken reports whether a reset token is currently usable, so the
// front end can reject a dead link before showing the new-password form.
func (s *Service) VerifyResetToken(ctx context.Context, token string) error {
	_, err := s.userByLiveResetToken(ctx, token)
	return err
}

// ResetPassword consumes a reset token and sets a new password. The account
// is also marked verified: admin invitations terminate here before the user
// ever ran the email-verification flow. A session token is issued so the
// user lands logged in.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) (*AuthResult, error) {
	if err := validator.Apply(validator.MinLength("password", newPassword, 8)); err != nil {
		return nil, err
	}

	user, err := s.userByLiveResetToken(ctx, token)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetExpiresAt = nil
	user.IsVerified = true

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("store new password: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed",
		slog.String("user_id", user.ID.String()),
	)

	return s.issueSession(user)
}

func (s *Service) userByLiveResetToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.store.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup reset token: %w", err)
	}

	if user.ResetExpiresAt == nil || s.now().After(*user.ResetExpiresAt) {
		return nil, ErrInvalidToken
	}

	return user, nil
}

// ChangePassword rotates the password of an authenticated user after
// verifying the current one. No session token is re-issued; the existing one
// stays valid until expiry.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := validator.Apply(validator.MinLength("password", newPassword, 8)); err != nil {
		return err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if !user.HasPassword() {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed",
		slog.String("user_id", user.ID.String()),
	)

	return nil
}

// InviteAdminInput is the payload for administrator provisioning.
type InviteAdminInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InviteAdmin creates an administrator account with no password, already
// verified, holding a reset token valid for seven days. The invitation email
// points at the same reset-password flow used for self-service recovery;
// onboarding is the same state transition with a longer token lifetime.
func (s *Service) InviteAdmin(ctx context.Context, in InviteAdminInput) (PublicUser, error) {
	in.Email = sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.Required("name", in.Name),
		validator.ValidEmail("email", in.Email),
	); err != nil {
		return PublicUser{}, err
	}

	token, err := random.Token(32)
	if err != nil {
		return PublicUser{}, fmt.Errorf("generate invite token: %w", err)
	}
	expiresAt := s.now().Add(s.inviteTTL)

	user := &User{
		ID:             uuid.New(),
		Name:           in.Name,
		Email:          in.Email,
		Role:           RoleAdmin,
		IsVerified:     true,
		ResetToken:     token,
		ResetExpiresAt: &expiresAt,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return PublicUser{}, ErrEmailAlreadyExists
		}
		return PublicUser{}, fmt.Errorf("create admin: %w", err)
	}

	s.mail.Enqueue(s.inviteEmail(user.Email, user.Name, token))
	s.logger.InfoContext(ctx, "admin invited",
		slog.String("user_id", user.ID.String()),
	)

	return user.Public(), nil
}
