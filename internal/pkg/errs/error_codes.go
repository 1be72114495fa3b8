/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in messages surfaced to users.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrFormParseFailed indicates failure to parse multipart or URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Registration and Profile Validation Errors
const (
	// ErrInvalidUsername indicates that the supplied username fails the format rules.
	ErrInvalidUsername = 2101

	// ErrInvalidEmail indicates that the supplied email address is empty or malformed.
	ErrInvalidEmail = 2102

	// ErrWeakPassword indicates that the password does not meet the minimum-strength policy.
	ErrWeakPassword = 2103

	// ErrPasswordMismatch indicates that password and confirmation do not match.
	ErrPasswordMismatch = 2104

	// ErrUsernameTaken indicates that the requested username is already registered.
	ErrUsernameTaken = 2105

	// ErrEmailTaken indicates that the requested email is already registered.
	ErrEmailTaken = 2106
)

// 3xxx: Authentication and Session Errors
const (
	// ErrInvalidCredentials indicates a failed login. It deliberately covers both
	// unknown identifier and wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = 3101

	// ErrAlreadyLoggedIn indicates an authenticated user hit a guest-only endpoint.
	ErrAlreadyLoggedIn = 3102

	// ErrUnauthorized indicates a protected resource was requested without a valid session.
	ErrUnauthorized = 3103

	// ErrUserNotFound indicates that the account referenced by a session no longer exists.
	ErrUserNotFound = 3104
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that persisting or removing an uploaded file failed.
	ErrFileStorageFailed = 5001
)
