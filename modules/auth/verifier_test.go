package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listora/identity/modules/auth"
)

func TestGoogleVerifier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	const clientID = "client-123.apps.googleusercontent.com"

	tokenInfo := func(t *testing.T, claims map[string]string) *httptest.Server {
		t.Helper()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(claims))
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	reject := func(t *testing.T) *httptest.Server {
		t.Helper()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("valid id token", func(t *testing.T) {
		t.Parallel()

		info := tokenInfo(t, map[string]string{
			"sub":     "google-sub-1",
			"aud":     clientID,
			"email":   "jane@example.com",
			"name":    "Jane",
			"picture": "https://lh3.test/jane.jpg",
		})
		userinfo := reject(t)

		v := auth.NewGoogleVerifier(clientID, auth.WithGoogleEndpoints(info.URL, userinfo.URL))
		identity, err := v.Verify(ctx, "id-token")
		require.NoError(t, err)
		assert.Equal(t, "google-sub-1", identity.SubjectID)
		assert.Equal(t, "jane@example.com", identity.Email)
		assert.Equal(t, "Jane", identity.Name)
		assert.Equal(t, "https://lh3.test/jane.jpg", identity.Image)
	})

	t.Run("audience mismatch", func(t *testing.T) {
		t.Parallel()

		info := tokenInfo(t, map[string]string{
			"sub":   "google-sub-1",
			"aud":   "someone-else.apps.googleusercontent.com",
			"email": "jane@example.com",
		})
		userinfo := reject(t)

		v := auth.NewGoogleVerifier(clientID, auth.WithGoogleEndpoints(info.URL, userinfo.URL))
		_, err := v.Verify(ctx, "id-token-for-another-app")
		assert.ErrorIs(t, err, auth.ErrInvalidAssertion)
	})

	t.Run("access token falls back to userinfo", func(t *testing.T) {
		t.Parallel()

		info := reject(t) // tokeninfo rejects access tokens
		userinfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
			require.NoError(t, json.NewEncoder(w).Encode(map[string]string{
				"id":    "google-sub-2",
				"email": "jane@example.com",
			}))
		}))
		t.Cleanup(userinfo.Close)

		v := auth.NewGoogleVerifier(clientID, auth.WithGoogleEndpoints(info.URL, userinfo.URL))
		identity, err := v.Verify(ctx, "access-token")
		require.NoError(t, err)
		assert.Equal(t, "google-sub-2", identity.SubjectID)
	})

	t.Run("both endpoints reject", func(t *testing.T) {
		t.Parallel()

		info := reject(t)
		userinfo := reject(t)

		v := auth.NewGoogleVerifier(clientID, auth.WithGoogleEndpoints(info.URL, userinfo.URL))
		_, err := v.Verify(ctx, "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidAssertion)
	})

	t.Run("empty assertion", func(t *testing.T) {
		t.Parallel()

		v := auth.NewGoogleVerifier(clientID)
		_, err := v.Verify(ctx, "")
		assert.ErrorIs(t, err, auth.ErrInvalidAssertion)
	})
}
