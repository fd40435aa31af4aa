package member

import (
	"testing"
)

func TestNewMemberHasLoadedPrivateKey(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !m.PrivateKeyLoaded {
		t.Fatal("expected PrivateKeyLoaded to be true for a freshly generated member")
	}
	if _, err := m.PrivateKey(); err != nil {
		t.Errorf("PrivateKey() failed: %v", err)
	}
}

func TestNewFromPublicKeyHasNoPrivateKey(t *testing.T) {
	m, _ := New()
	pubOnly := NewFromPublicKey(m.ID, m.PublicKey)

	if pubOnly.PrivateKeyLoaded {
		t.Error("expected PrivateKeyLoaded to be false")
	}
	if _, err := pubOnly.PrivateKey(); err != ErrPrivateKeyNotLoaded {
		t.Errorf("expected ErrPrivateKeyNotLoaded, got %v", err)
	}
}

func TestLoadPrivateKey(t *testing.T) {
	m, _ := New()
	priv, _ := m.PrivateKey()
	pubOnly := NewFromPublicKey(m.ID, m.PublicKey)

	pubOnly.LoadPrivateKey(priv)
	if !pubOnly.PrivateKeyLoaded {
		t.Error("expected PrivateKeyLoaded to be true after LoadPrivateKey")
	}
}

func TestShortIDLength(t *testing.T) {
	m, _ := New()
	if len(m.ShortID()) != 8 {
		t.Errorf("expected an 8-character short ID, got %q", m.ShortID())
	}
}

func TestPublicKeyHashIsDeterministic(t *testing.T) {
	m, _ := New()
	h1 := m.PublicKeyHash()
	h2 := m.PublicKeyHash()
	if len(h1) != 32 {
		t.Fatalf("expected a 32-byte hash, got %d", len(h1))
	}
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatal("PublicKeyHash should be deterministic for the same key")
		}
	}
}

func TestWipeClearsPrivateKey(t *testing.T) {
	m, _ := New()
	m.Wipe()
	if m.PrivateKeyLoaded {
		t.Error("expected PrivateKeyLoaded to be false after Wipe")
	}
	if _, err := m.PrivateKey(); err != ErrPrivateKeyNotLoaded {
		t.Errorf("expected ErrPrivateKeyNotLoaded after Wipe, got %v", err)
	}
}
