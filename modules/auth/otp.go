package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/listora/identity/pkg/random"
	"github.com/listora/identity/pkg/sanitizer"
	"github.com/listora/identity/pkg/validator"
)

// RequestOTP issues a 6-digit login code to the given email. When no account
// exists one is provisioned on the fly, unverified, with the local part of
// the email as its display name, so requesting a code doubles as a low-friction
// signup. An existing account gets its previous unconsumed code overwritten.
//
// The caller always receives the same generic success; nothing in the
// response reveals whether the account pre-existed.
func (s *Service) RequestOTP(ctx context.Context, emailAddr string) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	if err := validator.Apply(validator.ValidEmail("email", emailAddr)); err != nil {
		return err
	}

	code, err := random.NumericCode(6)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	expiresAt := s.now().Add(s.otpTTL)

	user, err := s.store.GetUserByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		user.OTPCode = code
		user.OTPExpiresAt = &expiresAt
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("store otp: %w", err)
		}
	case errors.Is(err, ErrUserNotFound):
		user = &User{
			ID:           uuid.New(),
			Name:         sanitizer.EmailLocalPart(emailAddr),
			Email:        emailAddr,
			Role:         RoleUser,
			OTPCode:      code,
			OTPExpiresAt: &expiresAt,
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			// Lost a race with a concurrent request for the same email; the
			// winner's code stands and this one is silently discarded.
			if errors.Is(err, ErrEmailAlreadyExists) {
				return nil
			}
			return fmt.Errorf("provision otp user: %w", err)
		}
	default:
		return fmt.Errorf("lookup user: %w", err)
	}

	s.mail.Enqueue(s.otpEmail(emailAddr, code))
	s.logger.InfoContext(ctx, "otp requested",
		slog.String("user_id", user.ID.String()),
	)

	return nil
}

// VerifyOTP checks a submitted code. Every failure cause (unknown email,
// wrong code, no code outstanding, expired code) collapses into
// ErrInvalidOTP. Success consumes the code, marks the account verified and
// issues a session token.
func (s *Service) VerifyOTP(ctx context.Context, emailAddr, code string) (*AuthResult, error) {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)
	if emailAddr == "" || code == "" {
		return nil, ErrInvalidOTP
	}

	user, err := s.store.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.OTPCode == "" || user.OTPExpiresAt == nil {
		return nil, ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare([]byte(user.OTPCode), []byte(code)) != 1 {
		return nil, ErrInvalidOTP
	}
	if s.now().After(*user.OTPExpiresAt) {
		return nil, ErrInvalidOTP
	}

	user.OTPCode = ""
	user.OTPExpiresAt = nil
	user.IsVerified = true

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	s.logger.InfoContext(ctx, "otp verified",
		slog.String("user_id", user.ID.String()),
	)

	return s.issueSession(user)
}
