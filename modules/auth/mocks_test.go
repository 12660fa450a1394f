package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/listora/identity/modules/auth"
	"github.com/listora/identity/pkg/email"
	"github.com/listora/identity/pkg/logger"
	"github.com/listora/identity/pkg/session"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) CreateUser(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockStorage) UpdateUser(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorage) GetUserByEmail(ctx context.Context, emailAddr string) (*auth.User, error) {
	args := m.Called(ctx, emailAddr)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorage) GetUserByVerificationToken(ctx context.Context, token string) (*auth.User, error) {
	args := m.Called(ctx, token)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorage) GetUserByResetToken(ctx context.Context, token string) (*auth.User, error) {
	args := m.Called(ctx, token)
	if u := args.Get(0); u != nil {
		return u.(*auth.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// captureSender records every message instead of delivering it.
type captureSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (c *captureSender) Send(_ context.Context, msg email.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureSender) messages() []email.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]email.Message(nil), c.sent...)
}

// fakeBlobStore returns deterministic URLs and records uploaded keys.
type fakeBlobStore struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeBlobStore) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	return "https://cdn.test/" + key, nil
}

type stubVerifier struct {
	identity *auth.ExternalIdentity
	err      error
}

func (s stubVerifier) Verify(context.Context, string) (*auth.ExternalIdentity, error) {
	return s.identity, s.err
}

type testHarness struct {
	svc      *auth.Service
	store    *mockStorage
	mail     *captureSender
	mailer   *email.Dispatcher
	blobs    *fakeBlobStore
	sessions *session.Service
	now      time.Time
}

func newHarness(t *testing.T, opts ...auth.Option) *testHarness {
	t.Helper()
	return newHarnessWithVerifier(t, stubVerifier{err: auth.ErrInvalidAssertion}, opts...)
}

func newHarnessWithVerifier(t *testing.T, verifier auth.IdentityVerifier, opts ...auth.Option) *testHarness {
	t.Helper()

	store := &mockStorage{}
	mailSender := &captureSender{}
	mailer := email.NewDispatcher(mailSender, logger.Discard())
	blobs := &fakeBlobStore{}
	now := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

	sessions, err := session.New(
		session.Config{Secret: "test-signing-secret-0123456789abcdef", TTL: time.Hour},
		session.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)

	opts = append([]auth.Option{
		auth.WithBcryptCost(bcrypt.MinCost),
		auth.WithClock(func() time.Time { return now }),
	}, opts...)

	svc := auth.NewService(
		store,
		sessions,
		mailer,
		blobs,
		verifier,
		auth.Config{FrontendBaseURL: "https://app.test"},
		opts...,
	)

	return &testHarness{
		svc:      svc,
		store:    store,
		mail:     mailSender,
		mailer:   mailer,
		blobs:    blobs,
		sessions: sessions,
		now:      now,
	}
}

// sentMessages drains the async mail queue before reading what was sent.
func (h *testHarness) sentMessages() []email.Message {
	h.mailer.Wait()
	return h.mail.messages()
}

func hashPassword(t *testing.T, password string) []byte {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func verifiedUser(t *testing.T, emailAddr, password string) *auth.User {
	t.Helper()
	return &auth.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        emailAddr,
		PasswordHash: hashPassword(t, password),
		Role:         auth.RoleUser,
		IsVerified:   true,
	}
}
