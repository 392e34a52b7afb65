package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// resetTokenBytes is the entropy of a password-reset token.
const resetTokenBytes = 32

// RandomHex returns a hex-encoded string of n cryptographically random bytes.
func RandomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// nothing sensible can be issued.
		panic("auth: entropy source unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// NewResetToken returns an opaque single-use password-reset token.
func NewResetToken() string {
	return RandomHex(resetTokenBytes)
}
