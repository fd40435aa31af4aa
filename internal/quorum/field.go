// Package quorum implements Shamir secret sharing over a Galois field whose
// width is chosen per call from the number of participating members,
// rather than a fixed GF(256), so that member counts well beyond 255 still
// have enough distinct non-zero field elements to serve as share indices.
// There is no package-level global: every split/combine call is bound to
// an explicit Field instance, eliminating the shared mutable "reinitialize
// the field width" state the design note calls out as a hazard to avoid.
package quorum

import "github.com/pkg/errors"

// MinBits and MaxBits bound the Galois field width: 3 bits (an 8-element
// field, enough for a 2-member quorum) up to 20 bits (a field comfortably
// covering MaximumShares).
const (
	MinBits = 3
	MaxBits = 20
)

// ErrInvalidBitRange is returned when a requested field width falls
// outside [MinBits, MaxBits].
var ErrInvalidBitRange = errors.New("quorum: InvalidBitRange")

// primitivePolynomials lists one irreducible polynomial per field width,
// used to build the field's log/exp tables. These are the standard
// low-weight primitive polynomials for GF(2^n), n in [3,20].
var primitivePolynomials = map[int]int{
	3:  0x0B,
	4:  0x13,
	5:  0x25,
	6:  0x43,
	7:  0x89,
	8:  0x11D,
	9:  0x211,
	10: 0x409,
	11: 0x805,
	12: 0x1053,
	13: 0x201B,
	14: 0x402B,
	15: 0x8003,
	16: 0x1100B,
	17: 0x20009,
	18: 0x40081,
	19: 0x80027,
	20: 0x100009,
}

// Field is an explicit GF(2^bits) instance: every operation takes the
// field as a receiver rather than mutating shared global state.
type Field struct {
	bits int
	size int // 2^bits
	exps []int
	logs []int
}

// NewField builds a Field of the requested bit width.
func NewField(bits int) (*Field, error) {
	if bits < MinBits || bits > MaxBits {
		return nil, ErrInvalidBitRange
	}
	poly := primitivePolynomials[bits]
	size := 1 << uint(bits)

	exps := make([]int, size*2)
	logs := make([]int, size)

	x := 1
	for i := 0; i < size-1; i++ {
		exps[i] = x
		logs[x] = i
		x <<= 1
		if x >= size {
			x ^= poly
		}
	}
	// Duplicate the table past size-1 so mul/div can index with an
	// unreduced exponent sum without an extra modulo branch.
	for i := size - 1; i < len(exps); i++ {
		exps[i] = exps[i-(size-1)]
	}

	return &Field{bits: bits, size: size, exps: exps, logs: logs}, nil
}

// Bits returns the field's configured width.
func (f *Field) Bits() int { return f.bits }

// Size returns 2^bits, the number of elements in the field.
func (f *Field) Size() int { return f.size }

// Add is GF(2^n) addition (and its own inverse): bitwise XOR.
func (f *Field) Add(a, b int) int { return a ^ b }

// Mul is GF(2^n) multiplication via the log/exp tables.
func (f *Field) Mul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exps[f.logs[a]+f.logs[b]]
}

// Div is GF(2^n) division; b must be non-zero.
func (f *Field) Div(a, b int) int {
	if a == 0 {
		return 0
	}
	return f.exps[(f.logs[a]-f.logs[b]+(f.size-1))%(f.size-1)]
}
