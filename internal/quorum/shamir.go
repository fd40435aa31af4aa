package quorum

import (
	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/cryptocore"
)

// SecretWidthBits is the bit width of the only kind of secret this package
// ever shares: a single AES-256 symmetric key (cryptocore.KeyLen bytes).
// Fixing this width sidesteps the general variable-length-secret
// bookkeeping found in bit-packing Shamir implementations (a leading
// marker bit to preserve leading zeroes, length side-channels, etc.):
// since every call shares exactly 256 bits, the chunk count and per-chunk
// bit width are derivable from `bits` alone, and reconstruction always
// truncates to exactly 256 bits.
const SecretWidthBits = cryptocore.KeyLen * 8

// Share is one element of Split's result: one slice of field elements per member,
// in member order. Share i is the i-th member's sequence of per-chunk
// evaluations; XCoordinate is the shared x value (member index) all of a
// share's evaluations were computed at.
type Share struct {
	XCoordinate int
	Values      []int
}

// Split divides secret (exactly cryptocore.KeyLen bytes) into shareCount
// shares such that any threshold of them reconstruct it, operating over
// field. xCoordinates assigns each share's evaluation point; callers pass
// member indices 1..shareCount (never 0, which is reserved for the secret
// itself).
func Split(field *Field, secret []byte, shareCount, threshold int, xCoordinates []int) ([]Share, error) {
	if len(secret) != cryptocore.KeyLen {
		return nil, errors.New("quorum: secret must be exactly cryptocore.KeyLen bytes")
	}
	if len(xCoordinates) != shareCount {
		return nil, errors.New("quorum: xCoordinates must have one entry per share")
	}
	for _, x := range xCoordinates {
		if x <= 0 || x >= field.Size() {
			return nil, errors.New("quorum: x-coordinate out of field range")
		}
	}

	chunks := packSecret(secret, field.Bits())

	shares := make([]Share, shareCount)
	for i, x := range xCoordinates {
		shares[i] = Share{XCoordinate: x, Values: make([]int, len(chunks))}
	}

	for chunkIdx, secretElem := range chunks {
		coeffs := randomPolynomial(field, secretElem, threshold-1)
		for i, x := range xCoordinates {
			shares[i].Values[chunkIdx] = evalPolynomial(field, coeffs, x)
		}
	}
	return shares, nil
}

// Combine reconstructs the original secret from at least threshold shares
// via Lagrange interpolation at x=0, independently per chunk.
func Combine(field *Field, shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, errors.New("quorum: no shares to combine")
	}
	numChunks := len(shares[0].Values)
	for _, s := range shares {
		if len(s.Values) != numChunks {
			return nil, errors.New("quorum: mismatched share lengths")
		}
	}

	chunks := make([]int, numChunks)
	for chunkIdx := 0; chunkIdx < numChunks; chunkIdx++ {
		points := make([][2]int, len(shares))
		for i, s := range shares {
			points[i] = [2]int{s.XCoordinate, s.Values[chunkIdx]}
		}
		chunks[chunkIdx] = interpolateAtZero(field, points)
	}

	return unpackSecret(chunks, field.Bits()), nil
}

// randomPolynomial returns degree+1 coefficients [a0, a1, ..., a_degree]
// for f(x) = a0 + a1*x + ... + a_degree*x^degree, with a0 fixed to
// secretElem and the rest drawn from the CSPRNG within the field's range.
func randomPolynomial(field *Field, secretElem, degree int) []int {
	coeffs := make([]int, degree+1)
	coeffs[0] = secretElem
	for i := 1; i <= degree; i++ {
		coeffs[i] = randomFieldElement(field)
	}
	return coeffs
}

func randomFieldElement(field *Field) int {
	bits := field.Bits()
	byteLen := (bits + 7) / 8
	for {
		b := cryptocore.RandBytes(byteLen)
		v := 0
		for _, by := range b {
			v = (v << 8) | int(by)
		}
		v &= field.Size() - 1
		return v
	}
}

func evalPolynomial(field *Field, coeffs []int, x int) int {
	// Horner's method, entirely within the field.
	result := 0
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = field.Add(field.Mul(result, x), coeffs[i])
	}
	return result
}

// interpolateAtZero evaluates the unique degree-(len(points)-1) polynomial
// through points at x=0, via Lagrange interpolation.
func interpolateAtZero(field *Field, points [][2]int) int {
	result := 0
	for i, pi := range points {
		xi, yi := pi[0], pi[1]
		numerator := 1
		denominator := 1
		for j, pj := range points {
			if i == j {
				continue
			}
			xj := pj[0]
			// (0 - xj) == xj in GF(2^n), since subtraction is XOR and
			// 0 XOR xj == xj.
			numerator = field.Mul(numerator, xj)
			denominator = field.Mul(denominator, field.Add(xi, xj))
		}
		term := field.Mul(yi, field.Div(numerator, denominator))
		result = field.Add(result, term)
	}
	return result
}

// packSecret splits a fixed SecretWidthBits-wide secret into field
// elements of width bits, MSB-first, zero-padding the final element.
func packSecret(secret []byte, bits int) []int {
	numChunks := (SecretWidthBits + bits - 1) / bits
	paddedBits := numChunks * bits

	bitBuf := make([]byte, paddedBits) // one bit per byte, 0 or 1, for simplicity
	for i := 0; i < SecretWidthBits; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		bitBuf[i] = (secret[byteIdx] >> uint(bitIdx)) & 1
	}
	// Remaining bytes of bitBuf are already zero (Go zero-value), serving
	// as the deterministic right-pad.

	chunks := make([]int, numChunks)
	for c := 0; c < numChunks; c++ {
		v := 0
		for b := 0; b < bits; b++ {
			v = (v << 1) | int(bitBuf[c*bits+b])
		}
		chunks[c] = v
	}
	return chunks
}

// unpackSecret inverts packSecret, truncating back to SecretWidthBits.
func unpackSecret(chunks []int, bits int) []byte {
	paddedBits := len(chunks) * bits
	bitBuf := make([]byte, paddedBits)
	for c, v := range chunks {
		for b := bits - 1; b >= 0; b-- {
			bitBuf[c*bits+(bits-1-b)] = byte((v >> uint(b)) & 1)
		}
	}

	secret := make([]byte, SecretWidthBits/8)
	for i := 0; i < SecretWidthBits; i++ {
		if bitBuf[i] == 1 {
			byteIdx := i / 8
			bitIdx := 7 - (i % 8)
			secret[byteIdx] |= 1 << uint(bitIdx)
		}
	}
	return secret
}
