package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds signing parameters for session tokens.
type Config struct {
	Secret string        `env:"SESSION_SIGNING_SECRET,required"`
	TTL    time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`
}

// Service signs and verifies session tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Service during construction.
type Option func(*Service)

// WithClock overrides the time source, used by tests to exercise expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a session token service. The secret should be at least 32
// bytes for adequate HMAC-SHA256 security.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	s := &Service{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue returns a signed token whose subject is userID, expiring TTL from now.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
// Returns ErrTokenExpired past expiry and ErrInvalidToken for every other
// failure, including tokens signed with an unexpected algorithm.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrInvalidToken
	}
	if !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
