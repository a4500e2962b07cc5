package types

import (
	"bytes"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashSize is the width in bytes of content and commit hashes.
const HashSize = 32

// Hash identifies a tree node or a blob by content. Two hashes are equal
// iff they denote the same content.
type Hash []byte

// HashBytes returns the BLAKE3 hash of the given data.
func HashBytes(data []byte) Hash {
	sum := blake3.Sum256(data)
	return sum[:]
}

// Key returns the hash as a string, for use as a map key.
func (h Hash) Key() string {
	return string(h)
}

func (h Hash) String() string {
	return hex.EncodeToString(h)
}

func (h Hash) Equal(other Hash) bool {
	return bytes.Equal(h, other)
}

// CommitHash identifies a persisted commit (a context root with its
// parents and info).
type CommitHash []byte

func (h CommitHash) String() string {
	return hex.EncodeToString(h)
}
