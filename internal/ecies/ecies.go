// Package ecies implements the hybrid public-key envelope used to wrap a
// per-block symmetric key under a member's P-256 public key. An ephemeral
// EC key agrees on a shared point via ECDH; HKDF turns that point into an
// AES-256-GCM key; the sealed payload is framed behind a fixed-width
// header so the envelope can be parsed without out-of-band length data.
//
// The design mirrors the ECDH+HKDF+AEAD wrapping pattern used for
// per-file keys in content-addressed storage systems: generate an
// ephemeral key, derive a wrapping key from the shared point, seal the
// payload, and ship the ephemeral public key alongside the ciphertext so
// the recipient can redo the ECDH step.
package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/cryptocore"
)

// Curve is the elliptic curve used throughout the envelope: P-256,
// producing a 65-byte uncompressed public key (0x04 prefix + 2x32 bytes).
var Curve = elliptic.P256()

const (
	// pubKeyLen is the length of an uncompressed P-256 public key
	// (0x04 || X || Y).
	pubKeyLen = 65
	ivLen     = 16
	tagLen    = 16
	// HeaderLen is the total fixed-width envelope header length:
	// 0x04-prefixed ephemeral public key, IV, and AEAD tag.
	HeaderLen = pubKeyLen + ivLen + tagLen

	hkdfInfo = "brightchain-ecies-envelope-v1"
)

// ErrInvalidHeader is returned when the ciphertext is too short to contain
// a valid envelope header, or the public key prefix byte is not 0x04.
var ErrInvalidHeader = errors.New("ecies: invalid envelope header")

// ErrDecryptionFailure is returned when the AEAD tag does not verify.
var ErrDecryptionFailure = errors.New("ecies: decryption failed")

// ErrInvalidKey is returned when a supplied public or private key is
// malformed.
var ErrInvalidKey = errors.New("ecies: invalid key")

// Encrypt wraps plaintext under recipientPublicKey, returning
// header || ciphertext, where header is the fixed HeaderLen prefix
// ephemeralPublicKey || iv || tag.
func Encrypt(recipientPublicKey []byte, plaintext []byte) ([]byte, error) {
	if len(recipientPublicKey) != pubKeyLen || recipientPublicKey[0] != 0x04 {
		return nil, ErrInvalidKey
	}
	recipX, recipY := elliptic.Unmarshal(Curve, recipientPublicKey)
	if recipX == nil {
		return nil, ErrInvalidKey
	}

	ephemeral, err := ecdsa.GenerateKey(Curve, rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "ecies: ephemeral key generation failed")
	}

	sharedX, _ := Curve.ScalarMult(recipX, recipY, ephemeral.D.Bytes())
	ephemeralPub := elliptic.Marshal(Curve, ephemeral.PublicKey.X, ephemeral.PublicKey.Y)
	aeadKey := deriveKey(ephemeralPub, sharedX)

	gcm, err := newGCM(aeadKey)
	if err != nil {
		return nil, err
	}

	iv := cryptocore.RandBytes(ivLen)
	// sealed = ciphertext || tag (tagLen suffix, per crypto/cipher.AEAD contract)
	sealed := gcm.Seal(nil, iv, plaintext, nil)
	ciphertext, tag := sealed[:len(plaintext)], sealed[len(plaintext):]

	out := make([]byte, 0, HeaderLen+len(plaintext))
	out = append(out, ephemeralPub...)
	out = append(out, iv...)
	out = append(out, tag...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptWithHeader inverts Encrypt using the recipient's private key.
func DecryptWithHeader(recipientPrivateKey []byte, envelope []byte) ([]byte, error) {
	if len(envelope) < HeaderLen {
		return nil, ErrInvalidHeader
	}
	if envelope[0] != 0x04 {
		return nil, ErrInvalidHeader
	}

	ephemeralPub := envelope[:pubKeyLen]
	iv := envelope[pubKeyLen : pubKeyLen+ivLen]
	tag := envelope[pubKeyLen+ivLen : HeaderLen]
	// crypto/cipher.AEAD.Open expects ciphertext || tag.
	sealed := make([]byte, 0, len(envelope)-pubKeyLen-ivLen)
	sealed = append(sealed, envelope[HeaderLen:]...)
	sealed = append(sealed, tag...)

	ephX, ephY := elliptic.Unmarshal(Curve, ephemeralPub)
	if ephX == nil {
		return nil, ErrInvalidHeader
	}

	d := new(big.Int).SetBytes(recipientPrivateKey)
	if d.Sign() <= 0 {
		return nil, ErrInvalidKey
	}

	sharedX, _ := Curve.ScalarMult(ephX, ephY, d.Bytes())
	aeadKey := deriveKey(ephemeralPub, sharedX)

	gcm, err := newGCM(aeadKey)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailure
	}
	return plaintext, nil
}

// Overhead returns eciesOverheadLength: the number of bytes the envelope
// adds beyond the plaintext (the HeaderLen-byte header, AEAD tag included).
func Overhead() int {
	return HeaderLen
}

// GenerateKeyPair returns a fresh P-256 key pair: an uncompressed public
// key (0x04 || X || Y) and the raw private scalar, for use as a Member's
// ECIES keys.
func GenerateKeyPair() (publicKey, privateKey []byte, err error) {
	priv, err := ecdsa.GenerateKey(Curve, rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ecies: key generation failed")
	}
	publicKey = elliptic.Marshal(Curve, priv.PublicKey.X, priv.PublicKey.Y)
	privateKey = priv.D.Bytes()
	return publicKey, privateKey, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "ecies: cipher init failed")
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return nil, errors.Wrap(err, "ecies: GCM init failed")
	}
	return gcm, nil
}

// deriveKey turns the ECDH shared point's X coordinate into an AES key via
// HKDF, binding the ephemeral public key into the context info so each
// envelope derives an independent key even if two plaintexts happened to
// share a shared secret (which ECDH randomness makes vanishingly unlikely
// in the first place).
func deriveKey(ephemeralPub []byte, sharedX *big.Int) []byte {
	secret := sharedX.Bytes()
	info := make([]byte, 0, len(hkdfInfo)+1+len(ephemeralPub))
	info = append(info, []byte(hkdfInfo)...)
	info = append(info, ':')
	info = append(info, ephemeralPub...)
	return cryptocore.HKDFDerive(secret, info, cryptocore.KeyLen)
}
