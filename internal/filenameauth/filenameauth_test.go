package filenameauth

import (
	"testing"
)

func sampleKeyHash() []byte {
	h := make([]byte, 32)
	for i := range h {
		h[i] = byte(i)
	}
	return h
}

func TestFilenameAuthRoundTrip(t *testing.T) {
	fa := New(sampleKeyHash())

	tag := fa.Tag("report.pdf", "application/pdf")
	if err := fa.Verify("report.pdf", "application/pdf", tag); err != nil {
		t.Fatalf("Verify failed on untampered metadata: %v", err)
	}
}

func TestFilenameAuthDetectsFileNameTamper(t *testing.T) {
	fa := New(sampleKeyHash())

	tag := fa.Tag("report.pdf", "application/pdf")
	if err := fa.Verify("other.pdf", "application/pdf", tag); err == nil {
		t.Error("Verify should reject a tampered fileName")
	}
}

func TestFilenameAuthDetectsMimeTypeTamper(t *testing.T) {
	fa := New(sampleKeyHash())

	tag := fa.Tag("report.pdf", "application/pdf")
	if err := fa.Verify("report.pdf", "application/octet-stream", tag); err == nil {
		t.Error("Verify should reject a tampered mimeType")
	}
}

func TestFilenameAuthDifferentKeysDifferentTags(t *testing.T) {
	fa1 := New(sampleKeyHash())
	otherHash := make([]byte, 32)
	for i := range otherHash {
		otherHash[i] = byte(255 - i)
	}
	fa2 := New(otherHash)

	tag1 := fa1.Tag("report.pdf", "application/pdf")
	if err := fa2.Verify("report.pdf", "application/pdf", tag1); err == nil {
		t.Error("a tag computed under one member's key should not verify under another's")
	}
}

func TestFilenameAuthWipe(t *testing.T) {
	fa := New(sampleKeyHash())
	fa.Wipe()
	for _, b := range fa.macKey {
		if b != 0 {
			t.Fatal("Wipe should zero the MAC key")
		}
	}
}

func BenchmarkFilenameAuthTag(b *testing.B) {
	fa := New(sampleKeyHash())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fa.Tag("report.pdf", "application/pdf")
	}
}
