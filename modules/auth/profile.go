package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/listora/identity/pkg/file"
)

// CurrentUser returns the public projection for an authenticated principal,
// re-read from the store so role and verification changes show immediately.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (PublicUser, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return PublicUser{}, ErrUserNotFound
		}
		return PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}
	return user.Public(), nil
}

// UpdateProfileImage uploads raw image bytes to blob storage and stores the
// returned URL on the user. Content type is sniffed from the bytes; only
// image types are accepted. Key layout under the bucket is the storage
// backend's concern, not ours.
func (s *Service) UpdateProfileImage(ctx context.Context, userID uuid.UUID, data []byte) (PublicUser, error) {
	if s.files == nil {
		return PublicUser{}, fmt.Errorf("profile image storage is not configured")
	}
	if len(data) == 0 {
		return PublicUser{}, file.ErrEmptyBlob
	}

	contentType := http.DetectContentType(data)
	if !file.IsImageMIMEType(contentType) {
		return PublicUser{}, file.ErrUnsupportedContent
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return PublicUser{}, ErrUserNotFound
		}
		return PublicUser{}, fmt.Errorf("lookup user: %w", err)
	}

	key := "avatars/" + user.ID.String() + file.ExtensionForMIME(contentType)
	url, err := s.files.Upload(ctx, key, contentType, data)
	if err != nil {
		return PublicUser{}, fmt.Errorf("upload profile image: %w", err)
	}

	user.Image = url
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return PublicUser{}, fmt.Errorf("store image url: %w", err)
	}

	s.logger.InfoContext(ctx, "profile image updated",
		slog.String("user_id", user.ID.String()),
	)

	return user.Public(), nil
}
