package quorum

import (
	"bytes"
	"testing"

	"github.com/JessicaMulein/BrightChain/internal/cryptocore"
)

func TestPackUnpackSecretRoundTrip(t *testing.T) {
	secret := cryptocore.RandBytes(cryptocore.KeyLen)
	for _, bits := range []int{3, 4, 8, 12, 16, 20} {
		chunks := packSecret(secret, bits)
		got := unpackSecret(chunks, bits)
		if !bytes.Equal(got, secret) {
			t.Errorf("bits=%d: pack/unpack round trip mismatch", bits)
		}
	}
}

func TestSplitCombineRoundTrip(t *testing.T) {
	field, err := NewField(4)
	if err != nil {
		t.Fatalf("NewField failed: %v", err)
	}
	secret := cryptocore.RandBytes(cryptocore.KeyLen)
	xs := []int{1, 2, 3, 4, 5}
	shares, err := Split(field, secret, 5, 3, xs)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	got, err := Combine(field, shares[:3])
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Error("expected Combine of a threshold-sized subset to recover the secret")
	}

	got2, err := Combine(field, []Share{shares[1], shares[3], shares[4]})
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if !bytes.Equal(got2, secret) {
		t.Error("expected any threshold-sized subset to recover the secret")
	}
}

func TestSplitRejectsWrongSecretLength(t *testing.T) {
	field, _ := NewField(4)
	if _, err := Split(field, []byte{1, 2, 3}, 3, 2, []int{1, 2, 3}); err == nil {
		t.Error("expected an error for a non-KeyLen secret")
	}
}
