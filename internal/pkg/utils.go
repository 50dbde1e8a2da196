package pkg

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRoundID - generates a new unique, URL safe round identifier.
func GenerateRoundID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(b)
}
