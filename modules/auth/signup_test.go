package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/listora/identity/modules/auth"
	"github.com/listora/identity/pkg/validator"
)

func TestSignup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates unverified account and emails a verification link", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		var created *auth.User
		h.store.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(nil, auth.ErrUserNotFound)
		h.store.On("CreateUser", mock.Anything, mock.AnythingOfType("*auth.User")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*auth.User) }).
			Return(nil)

		got, err := h.svc.Signup(ctx, auth.SignupInput{
			Name:     "Jane",
			Email:    " Jane@Example.COM ",
			Password: "correct horse",
		})
		require.NoError(t, err)

		assert.Equal(t, "jane@example.com", got.Email)
		assert.Equal(t, auth.RoleUser, got.Role)

		require.NotNil(t, created)
		assert.False(t, created.IsVerified)
		assert.NotEmpty(t, created.VerificationToken)
		assert.True(t, created.HasPassword())

		msgs := h.sentMessages()
		require.Len(t, msgs, 1)
		assert.Equal(t, "jane@example.com", msgs[0].To)
		assert.Contains(t, msgs[0].BodyHTML, created.VerificationToken)
	})

	t.Run("rejects an already registered email", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.store.On("GetUserByEmail", mock.Anything, "jane@example.com").
			Return(verifiedUser(t, "jane@example.com", "whatever1"), nil)

		_, err := h.svc.Signup(ctx, auth.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "correct horse"})
		assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
		assert.Empty(t, h.sentMessages())
	})

	t.Run("race loser at insert gets the same duplicate error", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.store.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(nil, auth.ErrUserNotFound)
		h.store.On("CreateUser", mock.Anything, mock.AnythingOfType("*auth.User")).Return(auth.ErrEmailAlreadyExists)

		_, err := h.svc.Signup(ctx, auth.SignupInput{Name: "Jane", Email: "jane@example.com", Password: "correct horse"})
		assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
	})

	t.Run("validates input before touching the store", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)

		_, err := h.svc.Signup(ctx, auth.SignupInput{Name: "", Email: "not-an-email", Password: "short"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.Fields()
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		h.store.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
	})
}

func TestVerifyEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("consumes the token and marks the account verified", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		user := verifiedUser(t, "jane@example.com", "correct horse")
		user.IsVerified = false
		user.VerificationToken = "tok123"

		h.store.On("GetUserByVerificationToken", mock.Anything, "tok123").Return(user, nil)
		h.store.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *auth.User) bool {
			return u.IsVerified && u.VerificationToken == ""
		})).Return(nil)

		require.NoError(t, h.svc.VerifyEmail(ctx, "tok123"))
		h.store.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.store.On("GetUserByVerificationToken", mock.Anything, "nope").Return(nil, auth.ErrUserNotFound)

		assert.ErrorIs(t, h.svc.VerifyEmail(ctx, "nope"), auth.ErrInvalidToken)
	})

	t.Run("empty token short-circuits", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		assert.ErrorIs(t, h.svc.VerifyEmail(ctx, ""), auth.ErrInvalidToken)
		h.store.AssertNotCalled(t, "GetUserByVerificationToken", mock.Anything, mock.Anything)
	})
}
