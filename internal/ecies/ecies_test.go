package ecies

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	pub, priv, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}

	plaintext := []byte("a block's worth of secret key material")
	envelope, err := Encrypt(pub, plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(envelope) != HeaderLen+len(plaintext) {
		t.Fatalf("unexpected envelope length: got %d, want %d", len(envelope), HeaderLen+len(plaintext))
	}

	out, err := DecryptWithHeader(priv, envelope)
	if err != nil {
		t.Fatalf("DecryptWithHeader failed: %v", err)
	}
	if !bytes.Equal(out, plaintext) {
		t.Errorf("round trip mismatch: got %q, want %q", out, plaintext)
	}
}

func TestDecryptWithWrongPrivateKeyFails(t *testing.T) {
	pub, _, _ := GenerateKeyPair()
	_, priv2, _ := GenerateKeyPair()

	envelope, err := Encrypt(pub, []byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := DecryptWithHeader(priv2, envelope); err == nil {
		t.Error("DecryptWithHeader should fail under the wrong private key")
	}
}

func TestDecryptDetectsTamperedCiphertext(t *testing.T) {
	pub, priv, _ := GenerateKeyPair()
	envelope, err := Encrypt(pub, []byte("secret payload"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	envelope[len(envelope)-1] ^= 0xFF

	if _, err := DecryptWithHeader(priv, envelope); err != ErrDecryptionFailure {
		t.Errorf("expected ErrDecryptionFailure, got %v", err)
	}
}

func TestDecryptRejectsShortEnvelope(t *testing.T) {
	_, priv, _ := GenerateKeyPair()
	if _, err := DecryptWithHeader(priv, []byte{0x04, 0x01, 0x02}); err != ErrInvalidHeader {
		t.Errorf("expected ErrInvalidHeader, got %v", err)
	}
}

func TestDecryptRejectsBadPrefixByte(t *testing.T) {
	pub, priv, _ := GenerateKeyPair()
	envelope, _ := Encrypt(pub, []byte("secret"))
	envelope[0] = 0x02

	if _, err := DecryptWithHeader(priv, envelope); err != ErrInvalidHeader {
		t.Errorf("expected ErrInvalidHeader, got %v", err)
	}
}

func TestEncryptRejectsMalformedPublicKey(t *testing.T) {
	if _, err := Encrypt([]byte{0x04, 0x01}, []byte("x")); err != ErrInvalidKey {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestOverheadMatchesHeaderLen(t *testing.T) {
	if Overhead() != 97 {
		t.Errorf("expected eciesOverheadLength=97, got %d", Overhead())
	}
}
