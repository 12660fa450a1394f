package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/listora/identity/pkg/pg"
)

// PostgresStorage implements Storage over a pgx pool. The users table has
// partial unique indexes on email, google_id and verification_token; insert
// and update errors from those indexes are translated into domain errors so
// flows can turn a lost race into the right client-facing outcome.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresStorage wraps an established pool.
func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

const userColumns = `id, name, email, password_hash, google_id, role, is_verified,
	verification_token, otp_code, otp_expires_at, reset_token, reset_expires_at,
	image, created_at, updated_at`

func (s *PostgresStorage) CreateUser(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (
			id, name, email, password_hash, google_id, role, is_verified,
			verification_token, otp_code, otp_expires_at, reset_token,
			reset_expires_at, image, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''),
			NULLIF($9, ''), $10, NULLIF($11, ''), $12, NULLIF($13, ''), $14, $15)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.GoogleID,
		user.Role, user.IsVerified, user.VerificationToken, user.OTPCode,
		user.OTPExpiresAt, user.ResetToken, user.ResetExpiresAt, user.Image,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return translateConstraintError(err, fmt.Errorf("create user: %w", err))
	}
	return nil
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now().UTC()

	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET
			name = $2,
			email = $3,
			password_hash = $4,
			google_id = NULLIF($5, ''),
			role = $6,
			is_verified = $7,
			verification_token = NULLIF($8, ''),
			otp_code = NULLIF($9, ''),
			otp_expires_at = $10,
			reset_token = NULLIF($11, ''),
			reset_expires_at = $12,
			image = NULLIF($13, ''),
			updated_at = $14
		WHERE id = $1`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.GoogleID,
		user.Role, user.IsVerified, user.VerificationToken, user.OTPCode,
		user.OTPExpiresAt, user.ResetToken, user.ResetExpiresAt, user.Image,
		user.UpdatedAt,
	)
	if err != nil {
		return translateConstraintError(err, fmt.Errorf("update user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getUser(ctx, `WHERE email = $1`, email)
}

func (s *PostgresStorage) GetUserByVerificationToken(ctx context.Context, token string) (*User, error) {
	return s.getUser(ctx, `WHERE verification_token = $1`, token)
}

func (s *PostgresStorage) GetUserByResetToken(ctx context.Context, token string) (*User, error) {
	return s.getUser(ctx, `WHERE reset_token = $1`, token)
}

func (s *PostgresStorage) getUser(ctx context.Context, where string, arg any) (*User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg)
	user, err := scanUser(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u                 User
		passwordHash      []byte
		googleID          *string
		verificationToken *string
		otpCode           *string
		resetToken        *string
		image             *string
	)

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &passwordHash, &googleID, &u.Role,
		&u.IsVerified, &verificationToken, &otpCode, &u.OTPExpiresAt,
		&resetToken, &u.ResetExpiresAt, &image, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = passwordHash
	u.GoogleID = deref(googleID)
	u.VerificationToken = deref(verificationToken)
	u.OTPCode = deref(otpCode)
	u.ResetToken = deref(resetToken)
	u.Image = deref(image)

	return &u, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// translateConstraintError maps unique violations onto domain errors by
// constraint name, falling back to the wrapped original for anything else.
func translateConstraintError(err error, wrapped error) error {
	if !pg.IsDuplicateKeyError(err) {
		return wrapped
	}
	switch pg.ViolatedConstraint(err) {
	case "users_email_key":
		return ErrEmailAlreadyExists
	case "users_google_id_key":
		return ErrGoogleIDLinked
	default:
		return wrapped
	}
}
