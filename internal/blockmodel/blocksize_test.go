package blockmodel

import "testing"

func TestSmallBlockSizeIs4096(t *testing.T) {
	if Small.Bytes() != 4096 {
		t.Errorf("expected Small=4096 to match the literal end-to-end scenarios, got %d", Small.Bytes())
	}
}

func TestBlockSizeFromLabelRoundTrip(t *testing.T) {
	for _, size := range []BlockSize{Message, Tiny, Small, Medium, Large, Huge} {
		label := size.String()
		got, ok := BlockSizeFromLabel(label)
		if !ok {
			t.Fatalf("BlockSizeFromLabel(%q) not found", label)
		}
		if got != size {
			t.Errorf("BlockSizeFromLabel(%q) = %v, want %v", label, got, size)
		}
	}
}

func TestBlockSizeValid(t *testing.T) {
	if !Small.Valid() {
		t.Error("expected Small to be a valid BlockSize")
	}
	if BlockSize(999).Valid() {
		t.Error("expected an out-of-range BlockSize to be invalid")
	}
}
