/*
Package randx provides functions for generating cryptographically secure random
values and unique identifiers.

It is primarily used to generate opaque Base62 session tokens and UUID-based
file keys for uploaded avatars.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// SessionTokenLength is the fixed length of generated session tokens.
	// 43 Base62 characters carry slightly over 256 bits of entropy.
	SessionTokenLength = 43
)

// SessionToken generates an opaque Base62 session token using a cryptographically
// secure random number generator (crypto/rand). It returns a string of length
// SessionTokenLength and any error encountered.
func SessionToken() (string, error) {
	result := make([]byte, SessionTokenLength)

	for i := range SessionTokenLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for session token: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// IsValidSessionToken checks if the given string has the shape of a generated
// session token: correct length and Base62 characters only. It does not check
// whether the token refers to a live session.
func IsValidSessionToken(token string) bool {
	if len(token) != SessionTokenLength {
		return false
	}

	for _, char := range token {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

// FileID generates a standard UUID v4 string to serve as a unique file identifier.
func FileID() string {
	return uuid.New().String()
}
