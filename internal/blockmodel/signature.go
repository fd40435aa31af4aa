package blockmodel

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/ecies"
)

// SignatureWidth is the fixed width of a CBL creatorSignature: two
// 32-byte, zero-padded P-256 scalars (r || s), matching the curve ecies
// already uses for envelope key agreement.
const SignatureWidth = 64

var ErrInvalidSignature = errors.New("blockmodel: creator signature does not verify")

// signDigest produces a fixed-width r||s signature over digest using the
// creator's raw ECIES-style private key scalar.
func signDigest(privateKey []byte, digest []byte) ([SignatureWidth]byte, error) {
	var out [SignatureWidth]byte
	d := new(big.Int).SetBytes(privateKey)
	priv := new(ecdsa.PrivateKey)
	priv.Curve = ecies.Curve
	priv.D = d
	priv.PublicKey.X, priv.PublicKey.Y = ecies.Curve.ScalarBaseMult(d.Bytes())

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return out, errors.Wrap(err, "blockmodel: signing failed")
	}
	putScalar(out[:32], r)
	putScalar(out[32:], s)
	return out, nil
}

// verifyDigest checks a fixed-width r||s signature against a public key
// and digest.
func verifyDigest(publicKey []byte, digest []byte, signature [SignatureWidth]byte) bool {
	x, y := elliptic.Unmarshal(ecies.Curve, publicKey)
	if x == nil {
		return false
	}
	pub := ecdsa.PublicKey{Curve: ecies.Curve, X: x, Y: y}
	r := new(big.Int).SetBytes(signature[:32])
	s := new(big.Int).SetBytes(signature[32:])
	return ecdsa.Verify(&pub, digest, r, s)
}

func putScalar(dst []byte, v *big.Int) {
	b := v.Bytes()
	copy(dst[len(dst)-len(b):], b)
}
