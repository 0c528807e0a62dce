package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandomString returns 32 bytes of cryptographic randomness, base64
// encoded. Used for one-time login nonces.
func GenerateRandomString() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(b), nil
}
