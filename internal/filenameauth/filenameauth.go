// Package filenameauth computes and verifies the integrity tag carried by
// an ExtendedCBL's fileName and mimeType fields. The tag detects tampering
// of this cosmetic metadata; it grants no access-control role of its own.
package filenameauth

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/cryptocore"
)

// MACLen is the length of the integrity tag in bytes (SHA256 HMAC).
const MACLen = 32

// hkdfInfo is the HKDF context string used to derive the per-creator MAC key
// from the creating member's public key hash, keeping this key separate
// from any key used for encryption or ECIES wrapping.
const hkdfInfo = "brightchain-extendedcbl-filenamemac-v1"

// ErrMACMismatch indicates the computed tag did not match the stored one.
var ErrMACMismatch = errors.New("filenameauth: MAC mismatch")

// FilenameAuth computes the fileName/mimeType integrity tag for a single
// ExtendedCBL, keyed off the creating member's public key hash.
type FilenameAuth struct {
	macKey []byte
}

// New derives a FilenameAuth instance's MAC key from the creator's public
// key hash via HKDF, so every ExtendedCBL produced by the same member uses
// the same key without that key ever being transmitted or stored directly.
func New(creatorPublicKeyHash []byte) *FilenameAuth {
	return &FilenameAuth{
		macKey: cryptocore.HKDFDerive(creatorPublicKeyHash, []byte(hkdfInfo), MACLen),
	}
}

// Tag computes the MAC over fileName || 0x00 || mimeType.
func (fa *FilenameAuth) Tag(fileName, mimeType string) [MACLen]byte {
	var out [MACLen]byte
	mac := fa.calculateMAC(fileName, mimeType)
	copy(out[:], mac)
	return out
}

// Verify recomputes the MAC and compares it against the stored tag in
// constant time, returning ErrMACMismatch on any tampering.
func (fa *FilenameAuth) Verify(fileName, mimeType string, tag [MACLen]byte) error {
	expected := fa.calculateMAC(fileName, mimeType)
	if !hmac.Equal(expected, tag[:]) {
		return ErrMACMismatch
	}
	return nil
}

func (fa *FilenameAuth) calculateMAC(fileName, mimeType string) []byte {
	h := hmac.New(sha256.New, fa.macKey)
	h.Write([]byte(fileName))
	h.Write([]byte{0x00})
	h.Write([]byte(mimeType))
	return h.Sum(nil)
}

// Wipe zeroes the derived MAC key from memory.
func (fa *FilenameAuth) Wipe() {
	for i := range fa.macKey {
		fa.macKey[i] = 0
	}
	fa.macKey = nil
}
