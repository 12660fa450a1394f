package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// ExternalIdentity is the profile a federated provider vouches for.
type ExternalIdentity struct {
	SubjectID string
	Email     string
	Name      string
	Image     string
}

// IdentityVerifier validates a third-party identity assertion and resolves
// the asserted profile. Implementations must reject assertions issued for a
// different client.
type IdentityVerifier interface {
	Verify(ctx context.Context, assertion string) (*ExternalIdentity, error)
}

const (
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleVerifier checks Google identity assertions. ID tokens are validated
// against Google's tokeninfo endpoint with an audience check; when the
// assertion is an access token instead (some client-side flows hand those
// over), the profile is fetched from the userinfo endpoint.
type GoogleVerifier struct {
	clientID   string
	httpClient *http.Client
	// endpoint overrides for tests
	tokenInfoURL string
	userInfoURL  string
}

// GoogleVerifierOption configures a GoogleVerifier.
type GoogleVerifierOption func(*GoogleVerifier)

// WithHTTPClient overrides the HTTP client used for Google API calls.
func WithHTTPClient(client *http.Client) GoogleVerifierOption {
	return func(v *GoogleVerifier) {
		if client != nil {
			v.httpClient = client
		}
	}
}

// WithGoogleEndpoints points the verifier at alternative endpoints, used by
// tests to stub Google.
func WithGoogleEndpoints(tokenInfoURL, userInfoURL string) GoogleVerifierOption {
	return func(v *GoogleVerifier) {
		v.tokenInfoURL = tokenInfoURL
		v.userInfoURL = userInfoURL
	}
}

// NewGoogleVerifier creates a verifier bound to one OAuth client id.
func NewGoogleVerifier(clientID string, opts ...GoogleVerifierOption) *GoogleVerifier {
	v := &GoogleVerifier{
		clientID:     clientID,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		tokenInfoURL: googleTokenInfoURL,
		userInfoURL:  googleUserInfoURL,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type googleClaims struct {
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify resolves the identity behind assertion, trying the ID-token path
// first and falling back to the access-token path.
func (v *GoogleVerifier) Verify(ctx context.Context, assertion string) (*ExternalIdentity, error) {
	if assertion == "" {
		return nil, ErrInvalidAssertion
	}

	identity, idTokenErr := v.verifyIDToken(ctx, assertion)
	if idTokenErr == nil {
		return identity, nil
	}

	identity, userInfoErr := v.fetchUserInfo(ctx, assertion)
	if userInfoErr == nil {
		return identity, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidAssertion, idTokenErr)
}

func (v *GoogleVerifier) verifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	endpoint := v.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var claims googleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, err
	}

	// Tokens minted for another application must not authenticate here.
	if claims.Aud != v.clientID {
		return nil, fmt.Errorf("audience mismatch")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, fmt.Errorf("tokeninfo response missing email or subject")
	}

	return &ExternalIdentity{
		SubjectID: claims.Sub,
		Email:     claims.Email,
		Name:      claims.Name,
		Image:     claims.Picture,
	}, nil
}

func (v *GoogleVerifier) fetchUserInfo(ctx context.Context, accessToken string) (*ExternalIdentity, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	client := oauth2.NewClient(ctx, src)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" || info.ID == "" {
		return nil, fmt.Errorf("userinfo response missing email or id")
	}

	return &ExternalIdentity{
		SubjectID: info.ID,
		Email:     info.Email,
		Name:      info.Name,
		Image:     info.Picture,
	}, nil
}
