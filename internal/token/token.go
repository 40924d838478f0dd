// Package token generates the opaque QR credentials embedded in attendee
// tickets.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// entropyBytes gives 128 bits per token; collisions are negligible by
// construction, so no store-level uniqueness constraint is needed.
const entropyBytes = 16

// New returns a fresh URL-safe check-in token.
func New() (string, error) {
	b := make([]byte, entropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token.New: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
