package access

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewToken generates an unguessable URL-safe token (36 random bytes,
// 48 characters encoded).
func NewToken() (string, error) {
	buf := make([]byte, 36)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
