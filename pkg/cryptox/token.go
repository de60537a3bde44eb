package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Identifier sizes in bytes before encoding.
const (
	// TokenSize128 is 128 bits of entropy (22 chars base64url). Token ids use it.
	TokenSize128 = 16
	// TokenSize256 is 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
)

// RandomString returns size random bytes as unpadded base64url.
func RandomString(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: random size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustRandomString is RandomString for sizes known to be valid. It panics
// only if the system random source fails.
func MustRandomString(size int) string {
	s, err := RandomString(size)
	if err != nil {
		panic(err)
	}
	return s
}
