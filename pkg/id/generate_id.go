// Package id generates the opaque identifiers used across the service:
// proposal ids, broker user ids and session tokens.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 32 lowercase hex characters from 16 random bytes, with no
// separators or prefixes.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
