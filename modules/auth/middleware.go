package auth

import (
	"net/http"
	"strings"
)

// Authenticate is the request gate for protected routes. It extracts the
// bearer token, verifies it, and re-reads the user from the store so role
// changes and deletions take effect immediately despite the token being
// stateless. Signature and expiry failures are indistinguishable to the
// client: everything is a plain 401.
func (s *Service) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, ErrUnauthenticated.Error(), nil)
			return
		}

		userID, err := s.sessions.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, ErrUnauthenticated.Error(), nil)
			return
		}

		user, err := s.store.GetUserByID(r.Context(), userID)
		if err != nil {
			// Includes accounts deleted after token issuance.
			writeError(w, http.StatusUnauthorized, ErrUnauthenticated.Error(), nil)
			return
		}

		ctx := WithPrincipal(r.Context(), Principal{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin principals. It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, ErrUnauthenticated.Error(), nil)
			return
		}
		if !p.IsAdmin() {
			writeError(w, http.StatusForbidden, ErrForbidden.Error(), nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrUnauthenticated
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrUnauthenticated
	}
	return parts[1], nil
}
