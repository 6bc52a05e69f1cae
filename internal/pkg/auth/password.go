package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password hashing
const BcryptCost = 10

// HashPassword hashes a plaintext password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash. It
// never fails hard: a malformed or plaintext stored value yields false.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// IsBcryptHash reports whether a stored credential looks like a bcrypt hash.
// Pre-migration rows may still hold plaintext; those must go through the
// explicit rehash maintenance pass, never a silent upgrade during login.
func IsBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}
