package dupescan

import (
	"bytes"
	"cmp"
	"encoding/hex"
	"fmt"
)

// HashValue is the key type produced by a Hasher. Values must be cheap to
// copy and totally ordered, since buckets are sorted by them.
type HashValue[H any] interface {
	comparable
	Compare(other H) int
	String() string
}

// Hash64 is the output of 64-bit checksums
type Hash64 uint64

// Compare orders two 64-bit hashes numerically
func (h Hash64) Compare(other Hash64) int {
	return cmp.Compare(h, other)
}

// String returns the hash as 16 lowercase hex digits
func (h Hash64) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Hash128 is the output of 128-bit checksums, big-endian
type Hash128 [16]byte

// Compare orders two 128-bit hashes lexicographically
func (h Hash128) Compare(other Hash128) int {
	return bytes.Compare(h[:], other[:])
}

// String returns the hash as lowercase hex
func (h Hash128) String() string {
	return hex.EncodeToString(h[:])
}

// Hash256 is the output of 256-bit checksums and cryptographic digests
type Hash256 [32]byte

// Compare orders two 256-bit hashes lexicographically
func (h Hash256) Compare(other Hash256) int {
	return bytes.Compare(h[:], other[:])
}

// String returns the hash as lowercase hex
func (h Hash256) String() string {
	return hex.EncodeToString(h[:])
}
