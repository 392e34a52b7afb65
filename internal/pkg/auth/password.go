// Package auth holds the credential primitives shared by the authentication
// service and the HTTP middleware: bcrypt password hashing, HS256 session
// tokens, and opaque reset secrets.
package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost mirrors the work factor used by the legacy platform.
const bcryptCost = 12

// HashPassword returns a salted bcrypt hash of the plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
