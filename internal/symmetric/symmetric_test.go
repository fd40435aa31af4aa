package symmetric

import (
	"bytes"
	"testing"
)

type sample struct {
	Name  string
	Value int
}

func TestEncryptDecryptJSONRoundTrip(t *testing.T) {
	in := sample{Name: "block", Value: 42}
	enc, err := EncryptJSON(in)
	if err != nil {
		t.Fatalf("EncryptJSON failed: %v", err)
	}

	var out sample
	if err := DecryptJSON(enc.Key, enc.EncryptedData, &out); err != nil {
		t.Fatalf("DecryptJSON failed: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestEncryptJSONNeverReusesKeys(t *testing.T) {
	enc1, _ := EncryptJSON(sample{Name: "a", Value: 1})
	enc2, _ := EncryptJSON(sample{Name: "b", Value: 2})
	if bytes.Equal(enc1.Key, enc2.Key) {
		t.Error("two independent EncryptJSON calls produced the same key")
	}
}

func TestDecryptWithKeyDetectsTamper(t *testing.T) {
	key := make([]byte, 32)
	plaintext := []byte("hello, block")
	ciphertext, err := EncryptWithKey(key, plaintext)
	if err != nil {
		t.Fatalf("EncryptWithKey failed: %v", err)
	}

	tampered := append([]byte{}, ciphertext...)
	tampered[len(tampered)-1] ^= 0xFF

	if _, err := DecryptWithKey(key, tampered); err == nil {
		t.Error("DecryptWithKey should reject tampered ciphertext")
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	key1 := make([]byte, 32)
	key2 := make([]byte, 32)
	key2[0] = 1

	ciphertext, err := EncryptWithKey(key1, []byte("secret"))
	if err != nil {
		t.Fatalf("EncryptWithKey failed: %v", err)
	}
	if _, err := DecryptWithKey(key2, ciphertext); err == nil {
		t.Error("DecryptWithKey should fail under the wrong key")
	}
}

func TestDecryptWithKeyRejectsShortInput(t *testing.T) {
	key := make([]byte, 32)
	if _, err := DecryptWithKey(key, []byte{1, 2, 3}); err == nil {
		t.Error("DecryptWithKey should reject input shorter than the nonce")
	}
}
