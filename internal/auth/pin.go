// Package auth holds PIN credential handling and the super-admin bootstrap.
package auth

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// A PIN is exactly six digits. Validation happens before any store access.
var pinPattern = regexp.MustCompile(`^\d{6}$`)

// ValidPIN reports whether the supplied string is a well-formed PIN
func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// HashPIN derives the stored bcrypt hash for a PIN
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPIN compares a supplied PIN against the stored hash.
// bcrypt's comparison is constant-time.
func CheckPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
