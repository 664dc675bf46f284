// Package hash provides stable XXH3-based hashing of integer tuples.
//
// The clustering engine uses it to pick re-seed candidates and the Hashed seeding
// strategy uses it to pick initial centroids. Equal inputs always map to equal
// outputs, across runs and platforms.
package hash

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Fold hashes a sequence of integers into a single 64-bit value.
//
// Each value is hashed with the previous result as the seed, starting from seed.
// This avoids building an intermediate buffer and keeps the result order-sensitive.
//
// Parameters:
//   - seed: Initial seed (0 is a valid seed)
//   - values: Values to fold in order
//
// Returns:
//   - uint64: Folded hash (seed itself when values is empty)
//
// Example:
//
//	h := hash.Fold(seed, uint64(iteration), uint64(cluster))
func Fold(seed uint64, values ...uint64) uint64 {
	h := seed

	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], v)
		h = xxh3.HashSeed(buf[:], h)
	}

	return h
}

// Index maps the folded hash of values onto [0, n).
//
// n must be positive.
func Index(n int, seed uint64, values ...uint64) int {
	return int(Fold(seed, values...) % uint64(n)) //nolint:gosec // G115: n is positive and the result < n
}
