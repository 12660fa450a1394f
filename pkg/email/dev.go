package email

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes emails to a local directory instead of sending them.
// Each message becomes an .html file next to a .txt summary so developers can
// open verification links without a mail provider.
type DevSender struct {
	dir string
}

// NewDevSender creates a filesystem sender rooted at dir. The directory is
// created on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrFailedToSendEmail, err)
	}

	base := time.Now().Format("2006_01_02_150405") + "_" + safeFilename(msg.Subject)

	if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(msg.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: write html: %v", ErrFailedToSendEmail, err)
	}

	summary := fmt.Sprintf("To: %s\nSubject: %s\nTag: %s\n", msg.To, msg.Subject, msg.Tag)
	if err := os.WriteFile(filepath.Join(d.dir, base+".txt"), []byte(summary), 0o644); err != nil {
		return fmt.Errorf("%w: write summary: %v", ErrFailedToSendEmail, err)
	}

	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func safeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	if len(s) > 80 {
		s = s[:80]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
