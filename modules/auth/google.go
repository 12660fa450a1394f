package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/listora/identity/pkg/sanitizer"
)

// GoogleLoginInput carries exactly one of two federation paths: a raw
// identity assertion to verify server-side, or profile fields a prior
// client-side exchange already verified.
type GoogleLoginInput struct {
	Credential string         `json:"credential,omitempty"`
	Profile    *GoogleProfile `json:"profile,omitempty"`
}

// GoogleProfile is the pre-verified variant of the federated input.
type GoogleProfile struct {
	SubjectID string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
}

// GoogleLogin authenticates via a Google identity. The account is looked up
// by email: absent means create (pre-verified), present-but-unlinked means
// link the subject id, present-and-linked means no mutation. Either way a
// session token is issued.
//
// An existing profile image is never overwritten by the assertion's picture;
// only an empty image is filled in. This preserves user-chosen images across
// federated logins.
func (s *Service) GoogleLogin(ctx context.Context, in GoogleLoginInput) (*AuthResult, error) {
	identity, err := s.resolveIdentity(ctx, in)
	if err != nil {
		return nil, err
	}
	identity.Email = sanitizer.NormalizeEmail(identity.Email)
	if identity.Name == "" {
		identity.Name = sanitizer.EmailLocalPart(identity.Email)
	}

	user, err := s.findOrCreateFederated(ctx, identity)
	if err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *Service) resolveIdentity(ctx context.Context, in GoogleLoginInput) (*ExternalIdentity, error) {
	switch {
	case in.Credential != "" && in.Profile != nil:
		return nil, ErrMissingGoogleInput
	case in.Credential != "":
		if s.google == nil {
			return nil, ErrInvalidAssertion
		}
		return s.google.Verify(ctx, in.Credential)
	case in.Profile != nil:
		if in.Profile.Email == "" || in.Profile.SubjectID == "" {
			return nil, ErrMissingGoogleInput
		}
		return &ExternalIdentity{
			SubjectID: in.Profile.SubjectID,
			Email:     in.Profile.Email,
			Name:      in.Profile.Name,
			Image:     in.Profile.Image,
		}, nil
	default:
		return nil, ErrMissingGoogleInput
	}
}

func (s *Service) findOrCreateFederated(ctx context.Context, identity *ExternalIdentity) (*User, error) {
	user, err := s.store.GetUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		return s.linkFederated(ctx, user, identity)
	case errors.Is(err, ErrUserNotFound):
		return s.createFederated(ctx, identity)
	default:
		return nil, fmt.Errorf("lookup user: %w", err)
	}
}

func (s *Service) linkFederated(ctx context.Context, user *User, identity *ExternalIdentity) (*User, error) {
	// Already linked: idempotent, nothing to write.
	if user.GoogleID != "" {
		return user, nil
	}

	user.GoogleID = identity.SubjectID
	user.IsVerified = true
	if user.Image == "" {
		user.Image = identity.Image
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, ErrGoogleIDLinked) {
			return nil, ErrGoogleIDLinked
		}
		return nil, fmt.Errorf("link google identity: %w", err)
	}

	s.logger.InfoContext(ctx, "google identity linked",
		slog.String("user_id", user.ID.String()),
	)

	return user, nil
}

func (s *Service) createFederated(ctx context.Context, identity *ExternalIdentity) (*User, error) {
	user := &User{
		ID:         uuid.New(),
		Name:       identity.Name,
		Email:      identity.Email,
		GoogleID:   identity.SubjectID,
		Role:       RoleUser,
		IsVerified: true, // the provider vouched for the email
		Image:      identity.Image,
	}

	err := s.store.CreateUser(ctx, user)
	if err == nil {
		s.logger.InfoContext(ctx, "federated user created",
			slog.String("user_id", user.ID.String()),
		)
		return user, nil
	}

	// Lost a creation race (concurrent first login or a signup for the same
	// email). Re-read once and link into whichever row won; if that still
	// fails, surface a conflict rather than a server error.
	if errors.Is(err, ErrEmailAlreadyExists) || errors.Is(err, ErrGoogleIDLinked) {
		existing, lookupErr := s.store.GetUserByEmail(ctx, identity.Email)
		if lookupErr == nil {
			return s.linkFederated(ctx, existing, identity)
		}
		return nil, ErrConflictingAccounts
	}

	return nil, fmt.Errorf("create federated user: %w", err)
}
