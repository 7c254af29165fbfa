// Package random provides seeds for the per-table random sources.
//
// Fresh tables draw a seed from crypto/rand. A table created with a seed
// phrase derives its seed from HMAC-SHA256(salt, phrase), so the same phrase
// deals the same cards and targets every time.
package random

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Derive returns a deterministic seed for key under salt.
func Derive(salt, key string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(key))
	sum := h.Sum(nil)
	// first 8 bytes are plenty for a math/rand seed
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Source returns a *rand.Rand for a table: derived from phrase when given,
// otherwise freshly seeded.
func Source(salt, phrase string) (*rand.Rand, error) {
	if phrase != "" {
		return rand.New(rand.NewSource(Derive(salt, phrase))), nil
	}
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}
