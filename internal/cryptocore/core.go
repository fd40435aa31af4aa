package cryptocore

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/JessicaMulein/BrightChain/internal/tlog"
)

// KeyLen is the length, in bytes, of symmetric keys used throughout the
// Symmetric Codec (AES-256-GCM).
const KeyLen = 32

// RandBytes returns n cryptographically random bytes. It exits the process
// via tlog.Fatal if the system CSPRNG fails, a fatal environment error rather
// than something a caller can recover from.
func RandBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		tlog.Fatal("cryptocore: failed to read from CSPRNG: %v", err)
	}
	return b
}

// HKDFDerive derives outLen bytes from secret using HKDF-SHA256 with the
// given context info, matching the pattern upspin's ee pack uses to turn a
// shared ECDH point into a per-purpose key.
func HKDFDerive(secret, info []byte, outLen int) []byte {
	r := hkdf.New(sha256.New, secret, nil, info)
	out := make([]byte, outLen)
	if _, err := io.ReadFull(r, out); err != nil {
		tlog.Fatal("cryptocore: HKDF derivation failed: %v", err)
	}
	return out
}

// CryptoCore bundles the symmetric backend together with the key length
// it was constructed for, mirroring the teacher's
// core-plus-backend split so higher layers depend on one small interface.
type CryptoCore struct {
	Backend *OptimizedBackend
	KeyLen  int
}

// New builds a CryptoCore around a freshly derived or supplied key.
func New(key []byte) (*CryptoCore, error) {
	backend, err := NewOptimizedBackend(key)
	if err != nil {
		return nil, err
	}
	return &CryptoCore{Backend: backend, KeyLen: len(key)}, nil
}

// Wipe clears the underlying backend's references so the GC can reclaim
// buffers promptly; it does not zero the original key, which remains the
// caller's responsibility.
func (c *CryptoCore) Wipe() {
	if c.Backend != nil {
		c.Backend.Wipe()
	}
}
