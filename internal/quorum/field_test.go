package quorum

import "testing"

func TestNewFieldRejectsOutOfRangeBits(t *testing.T) {
	if _, err := NewField(2); err != ErrInvalidBitRange {
		t.Errorf("expected ErrInvalidBitRange for bits=2, got %v", err)
	}
	if _, err := NewField(21); err != ErrInvalidBitRange {
		t.Errorf("expected ErrInvalidBitRange for bits=21, got %v", err)
	}
}

func TestFieldMulDivRoundTrip(t *testing.T) {
	field, err := NewField(8)
	if err != nil {
		t.Fatalf("NewField failed: %v", err)
	}
	for a := 1; a < field.Size(); a++ {
		for b := 1; b < field.Size(); b++ {
			product := field.Mul(a, b)
			if field.Div(product, b) != a {
				t.Fatalf("Div(Mul(%d,%d), %d) = %d, want %d", a, b, b, field.Div(product, b), a)
			}
		}
	}
}

func TestFieldMulByZero(t *testing.T) {
	field, _ := NewField(4)
	if field.Mul(0, 7) != 0 || field.Mul(7, 0) != 0 {
		t.Error("expected multiplication by zero to be zero")
	}
}

func TestFieldAddIsSelfInverse(t *testing.T) {
	field, _ := NewField(5)
	a, b := 9, 17
	sum := field.Add(a, b)
	if field.Add(sum, b) != a {
		t.Error("expected GF(2^n) addition to be self-inverse (XOR)")
	}
}
