/*
Package user contains the credential store: the User record and the persistence
interface it is read and written through.

A User is uniquely identified by id, and both username and email carry uniqueness
constraints. The password is only ever stored as a bcrypt hash; the plaintext never
touches this package.
*/
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates that no user matched the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates a uniqueness conflict on the username column.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken indicates a uniqueness conflict on the email column.
	ErrEmailTaken = errors.New("email already registered")
)

// User represents a stored account record.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarFile   string    `json:"avatarFile,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateParams carries the fields required to insert a new user record.
type CreateParams struct {
	Username     string
	Email        string
	PasswordHash string
}

// UpdateProfileParams carries the mutable profile fields. AvatarFile is a pointer
// so callers can distinguish "leave unchanged" (nil) from "set to this key".
type UpdateProfileParams struct {
	ID         uuid.UUID
	Username   string
	Email      string
	AvatarFile *string
}

// Store is the persistence interface for user records.
//
// GetByIdentifier matches the identifier against the username OR the email column.
// The match is an exact, case-sensitive string comparison on both columns.
type Store interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	GetByIdentifier(ctx context.Context, identifier string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error)
}
