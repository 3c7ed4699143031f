package auth

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// MaxPasswordBytes is bcrypt's input limit. Longer passwords are truncated to
// this prefix before hashing and before comparison, so two passwords that
// differ only after byte 72 verify against the same hash.
const MaxPasswordBytes = 72

// HashPassword derives a salted bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash. A malformed hash is a mismatch.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(plain)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		b = b[:MaxPasswordBytes]
	}
	return b
}
