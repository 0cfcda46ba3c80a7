// Package shared provides small helpers for generating storage keys.
package shared

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// newID is a seam for tests.
var newID = uuid.New

// GenerateKey returns a fresh storage key: the hex form of a random UUID,
// reversed. The reversal spreads keys across prefix-partitioned blob stores
// and carries no security property.
func GenerateKey() string {
	id := newID()
	return Reverse(hex.EncodeToString(id[:]))
}

// Reverse returns s with its bytes in reverse order. Keys are ASCII.
func Reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
