/*
Package auth implements credential authentication and registration.

Passwords are hashed with bcrypt (per-record salt, tunable work factor) and are
never compared in plaintext. Authentication failures are deliberately collapsed
into a single ErrInvalidCredentials so callers cannot tell an unknown identifier
apart from a wrong password.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"userhub/internal/app/user"
)

var (
	// ErrInvalidCredentials is the single undifferentiated authentication failure.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidUsername indicates the username fails the format rules.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidEmail indicates the email address is empty or malformed.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrWeakPassword indicates the password fails the minimum-strength policy.
	ErrWeakPassword = errors.New("weak password")

	// ErrPasswordMismatch indicates password and confirmation differ.
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
)

// maxPasswordLength caps input length; bcrypt ignores bytes beyond 72 anyway.
const maxPasswordLength = 72

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// Service verifies credentials against the user store and registers new accounts.
type Service struct {
	users             user.Store
	passwordMinLength int
}

// NewService constructs a Service. passwordMinLength is the configurable lower
// bound of the password policy.
func NewService(users user.Store, passwordMinLength int) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if passwordMinLength <= 0 {
		return nil, fmt.Errorf("password minimum length must be > 0")
	}

	return &Service{
		users:             users,
		passwordMinLength: passwordMinLength,
	}, nil
}

// HashPassword hashes the plaintext with bcrypt at the default cost.
func (s *Service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored bcrypt hash.
func (s *Service) CheckPassword(storedHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// Authenticate looks the identifier up against both the username and email
// columns and verifies the password against the stored hash. It returns the
// matched user only when the record exists AND the password check succeeds;
// every other outcome is ErrInvalidCredentials. The only side effect is a read.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (user.User, error) {
	u, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, fmt.Errorf("lookup identifier: %w", err)
	}

	if !s.CheckPassword(u.PasswordHash, password) {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// RegisterParams carries the registration form fields.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the params, hashes the password, and persists the record.
// Uniqueness conflicts surface as user.ErrUsernameTaken / user.ErrEmailTaken from
// the store; the failed insert leaves no partial record behind.
func (s *Service) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	if !usernameRegex.MatchString(params.Username) {
		return user.User{}, ErrInvalidUsername
	}

	if params.Email == "" {
		return user.User{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return user.User{}, ErrInvalidEmail
	}

	if err := s.validatePasswordPolicy(params.Password); err != nil {
		return user.User{}, err
	}

	if params.Password != params.ConfirmPassword {
		return user.User{}, ErrPasswordMismatch
	}

	hashed, err := s.HashPassword(params.Password)
	if err != nil {
		return user.User{}, err
	}

	return s.users.Create(ctx, user.CreateParams{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hashed,
	})
}

// validatePasswordPolicy enforces the configurable minimum length and the bcrypt
// input ceiling.
func (s *Service) validatePasswordPolicy(password string) error {
	length := utf8.RuneCountInString(password)
	if length < s.passwordMinLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
