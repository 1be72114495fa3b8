/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process submitted data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Registration and Profile Validation Errors
	ErrInvalidUsername:  {Code: ErrInvalidUsername, Message: "Usernames must be 3-30 characters: lowercase letters, digits, or underscores.", Status: http.StatusBadRequest},
	ErrInvalidEmail:     {Code: ErrInvalidEmail, Message: "Please enter a valid email address.", Status: http.StatusBadRequest},
	ErrWeakPassword:     {Code: ErrWeakPassword, Message: "Password must be at least %d characters long.", Status: http.StatusBadRequest},
	ErrPasswordMismatch: {Code: ErrPasswordMismatch, Message: "Passwords do not match.", Status: http.StatusBadRequest},
	ErrUsernameTaken:    {Code: ErrUsernameTaken, Message: "Username is already taken.", Status: http.StatusConflict},
	ErrEmailTaken:       {Code: ErrEmailTaken, Message: "Email is already registered.", Status: http.StatusConflict},

	// 3xxx: Authentication and Session Errors
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid username/email or password.", Status: http.StatusUnauthorized},
	ErrAlreadyLoggedIn:    {Code: ErrAlreadyLoggedIn, Message: "You are already signed in.", Status: http.StatusBadRequest},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},
}
