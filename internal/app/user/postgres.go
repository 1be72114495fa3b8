package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"userhub/internal/app/db"
)

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const userColumns = "id, username, email, password_hash, COALESCE(avatar_file, ''), created_at, updated_at"

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AvatarFile, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

// Create inserts a new user record. A uniqueness conflict is mapped to
// ErrUsernameTaken or ErrEmailTaken according to the violated constraint;
// the insert rolls back implicitly and no partial record remains.
func (s *PostgresStore) Create(ctx context.Context, params CreateParams) (User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	u, err := scanUser(s.pool.QueryRow(ctx, query, params.Username, params.Email, params.PasswordHash))
	if err != nil {
		if conflictErr := mapUniqueViolation(err); conflictErr != nil {
			return User{}, conflictErr
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByIdentifier looks a user up by username or email with a single OR-matched
// query. At most one row can match because both columns are unique.
func (s *PostgresStore) GetByIdentifier(ctx context.Context, identifier string) (User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $1
		LIMIT 1`

	return scanUser(s.pool.QueryRow(ctx, query, identifier))
}

// GetByID looks a user up by primary key.
func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// UpdateProfile updates username, email, and optionally the avatar file key in a
// single statement, so the whole profile edit commits or rolls back atomically.
func (s *PostgresStore) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	query := `
		UPDATE users
		SET username = $2,
		    email = $3,
		    avatar_file = COALESCE($4, avatar_file),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(s.pool.QueryRow(ctx, query, params.ID, params.Username, params.Email, params.AvatarFile))
	if err != nil {
		if conflictErr := mapUniqueViolation(err); conflictErr != nil {
			return User{}, conflictErr
		}
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("update user profile: %w", err)
	}
	return u, nil
}

// mapUniqueViolation translates a 23505 error into the field-level sentinel error,
// using the constraint name from the migration. Returns nil for other errors.
func mapUniqueViolation(err error) error {
	if !db.IsUniqueViolation(err) {
		return nil
	}
	switch db.UniqueConstraintName(err) {
	case "users_email_key":
		return ErrEmailTaken
	default:
		return ErrUsernameTaken
	}
}
