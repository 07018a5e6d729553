package auth

import (
	"fmt"

	"github.com/avelkins/studyplanner/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the service has always used.
const bcryptCost = 10

// HashPassword returns a salted bcrypt hash of plain. The result embeds
// algorithm, cost and salt, so two calls with the same input produce
// different strings.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares plain against a stored bcrypt hash. A mismatch
// yields common.ErrorUnauthorized; any other failure (malformed hash,
// library error) is surfaced as common.ErrorInternal so callers never
// mistake it for a wrong password.
func CheckPassword(plain, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return common.ErrorUnauthorized
	}
	return common.ErrorInternal
}
