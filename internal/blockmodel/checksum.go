// Package blockmodel implements the fixed-size, checksum-addressed block
// record that every other BrightChain component builds on: a typed,
// validated record with ephemeral/encrypted/CBL variants and a content
// address computed over its fully padded bytes.
package blockmodel

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// ChecksumWidth is W, the fixed width in bytes of a ChecksumBuffer.
const ChecksumWidth = 32

// ChecksumBuffer is the content address of a block: a fixed-width digest
// over its full (padded) bytes. BrightChain uses SHA-512/256 rather than a
// SHA-3 build, since no third-party fixed-width hash package is part of
// the dependency set this module draws on; crypto/sha512's truncated
// 256-bit variant gives the same 32-byte width and avoids length-extension
// pitfalls a plain SHA-256 "SHA-3 family or equivalent" substitute would
// otherwise need to call out.
type ChecksumBuffer [ChecksumWidth]byte

// CalculateChecksum computes the ChecksumBuffer over data. Deterministic.
func CalculateChecksum(data []byte) ChecksumBuffer {
	return ChecksumBuffer(sha512.Sum512_256(data))
}

// Equals reports whether two checksums are identical, using a
// constant-time comparison since checksums double as block addresses that
// may be compared against attacker-influenced input.
func Equals(a, b ChecksumBuffer) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

// String returns the lowercase hex encoding used for paths and logs.
func (c ChecksumBuffer) String() string {
	return hex.EncodeToString(c[:])
}

// IsZero reports whether c is the zero-value checksum, i.e. never computed.
func (c ChecksumBuffer) IsZero() bool {
	var zero ChecksumBuffer
	return c == zero
}

// ChecksumFromHex decodes a hex string (as found in a store path) back into
// a ChecksumBuffer.
func ChecksumFromHex(s string) (ChecksumBuffer, error) {
	var out ChecksumBuffer
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != ChecksumWidth {
		return out, ErrInvalidHeader
	}
	copy(out[:], b)
	return out, nil
}
