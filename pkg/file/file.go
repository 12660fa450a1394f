package file

import (
	"context"
	"strings"
)

// Storage uploads blobs and yields public URLs. Implementations own key
// layout and folder policy; callers only hand over bytes.
type Storage interface {
	// Upload stores data under key with the given content type and returns
	// the public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

var imageMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"image/avif":    true,
}

// IsImageMIMEType reports whether mime is an accepted image content type.
// Parameters after a semicolon are ignored.
func IsImageMIMEType(mime string) bool {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return imageMIMETypes[strings.ToLower(strings.TrimSpace(mime))]
}

// ExtensionForMIME returns the conventional file extension for an image
// content type, defaulting to ".bin" for anything unknown.
func ExtensionForMIME(mime string) string {
	switch {
	case strings.HasPrefix(mime, "image/jpeg"), strings.HasPrefix(mime, "image/jpg"):
		return ".jpg"
	case strings.HasPrefix(mime, "image/png"):
		return ".png"
	case strings.HasPrefix(mime, "image/gif"):
		return ".gif"
	case strings.HasPrefix(mime, "image/webp"):
		return ".webp"
	case strings.HasPrefix(mime, "image/svg+xml"):
		return ".svg"
	case strings.HasPrefix(mime, "image/bmp"):
		return ".bmp"
	case strings.HasPrefix(mime, "image/avif"):
		return ".avif"
	default:
		return ".bin"
	}
}
