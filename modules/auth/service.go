package auth

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/listora/identity/pkg/email"
	"github.com/listora/identity/pkg/file"
	"github.com/listora/identity/pkg/logger"
	"github.com/listora/identity/pkg/session"
)

// Config holds the flow parameters that come from the environment.
type Config struct {
	// FrontendBaseURL prefixes the links embedded in verification and reset
	// emails.
	FrontendBaseURL string `env:"FRONTEND_BASE_URL,required"`
	// GoogleClientID is the audience expected on Google identity assertions.
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
}

// Service implements every credential flow. Collaborators are injected at
// construction and live for the process lifetime; the service itself is
// stateless and safe for concurrent use.
type Service struct {
	store    Storage
	sessions *session.Service
	mail     *email.Dispatcher
	files    file.Storage
	google   IdentityVerifier
	logger   *slog.Logger

	frontendBaseURL string
	bcryptCost      int
	otpTTL          time.Duration
	resetTTL        time.Duration
	inviteTTL       time.Duration
	now             func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger; the default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBcryptCost overrides the hashing cost, mainly to speed up tests.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithOTPTTL overrides the one-time passcode lifetime.
func WithOTPTTL(ttl time.Duration) Option {
	return func(s *Service) { s.otpTTL = ttl }
}

// WithResetTTL overrides the self-service reset token lifetime.
func WithResetTTL(ttl time.Duration) Option {
	return func(s *Service) { s.resetTTL = ttl }
}

// WithInviteTTL overrides the admin invitation token lifetime.
func WithInviteTTL(ttl time.Duration) Option {
	return func(s *Service) { s.inviteTTL = ttl }
}

// WithClock overrides the time source for expiry checks in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the credential flows. store, sessions and mail are
// required; files may be nil when profile-image updates are not mounted, and
// google may be nil when federated login is disabled.
func NewService(
	store Storage,
	sessions *session.Service,
	mail *email.Dispatcher,
	files file.Storage,
	google IdentityVerifier,
	cfg Config,
	opts ...Option,
) *Service {
	s := &Service{
		store:           store,
		sessions:        sessions,
		mail:            mail,
		files:           files,
		google:          google,
		logger:          logger.Discard(),
		frontendBaseURL: cfg.FrontendBaseURL,
		bcryptCost:      bcrypt.DefaultCost,
		otpTTL:          10 * time.Minute,
		resetTTL:        1 * time.Hour,
		inviteTTL:       7 * 24 * time.Hour,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AuthResult is what token-issuing flows return: the session token plus the
// public projection of the authenticated user.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

func (s *Service) issueSession(user *User) (*AuthResult, error) {
	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
