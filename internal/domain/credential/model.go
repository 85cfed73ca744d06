package credential

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Username is the single administrator account name.
const Username = "admin"

// MinPasswordLength applies to newly set passwords only.
const MinPasswordLength = 12

const bcryptCost = 12

// Domain errors
var (
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 12 characters")
)

// ValidateNewPassword checks a password chosen by the administrator.
func ValidateNewPassword(plaintext string) error {
	if strings.TrimSpace(plaintext) == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Hash returns the bcrypt hash stored in the admin_password setting.
// PRE: plaintext passed ValidateNewPassword
// POST: Returns a bcrypt hash at cost 12
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// IsHash reports whether stored looks like a bcrypt hash.
func IsHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// Verify compares a login attempt against the stored value.
// A stored value that is not a bcrypt hash is treated as a legacy
// plaintext password and compared in constant time; legacy is true then.
func Verify(stored, plaintext string) (ok, legacy bool) {
	if stored == "" || plaintext == "" {
		return false, false
	}
	if IsHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil, false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plaintext)) == 1, true
}

// Check verifies a full username/password pair.
func Check(username, password, stored string) (ok, legacy bool) {
	if username != Username {
		return false, false
	}
	return Verify(stored, password)
}
