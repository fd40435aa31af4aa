package ingest

import (
	"bytes"
	"testing"
)

func TestAssemblerEmitsFullBlocks(t *testing.T) {
	var got [][]byte
	a := NewAssembler(4, func(chunk []byte, final bool) error {
		cp := append([]byte{}, chunk...)
		got = append(got, cp)
		if final {
			t.Errorf("unexpected final block for %v", chunk)
		}
		return nil
	})

	if err := a.Write([]byte("abcdefgh")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 full blocks, got %d", len(got))
	}
	if !bytes.Equal(got[0], []byte("abcd")) || !bytes.Equal(got[1], []byte("efgh")) {
		t.Errorf("unexpected block contents: %v", got)
	}
}

func TestAssemblerFlushesPartialBlockOnClose(t *testing.T) {
	var got [][]byte
	var finals []bool
	a := NewAssembler(4, func(chunk []byte, final bool) error {
		got = append(got, append([]byte{}, chunk...))
		finals = append(finals, final)
		return nil
	})

	if err := a.Write([]byte("abcdef")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 blocks (1 full + 1 partial), got %d", len(got))
	}
	if !bytes.Equal(got[1], []byte("ef")) {
		t.Errorf("expected partial final block 'ef', got %q", got[1])
	}
	if finals[0] || !finals[1] {
		t.Errorf("expected only the last block marked final, got %v", finals)
	}
}

func TestAssemblerWriteAfterCloseFails(t *testing.T) {
	a := NewAssembler(4, func(chunk []byte, final bool) error { return nil })
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := a.Write([]byte("x")); err != ErrClosed {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestAssemblerCloseOnEmptyBufferEmitsNothing(t *testing.T) {
	called := false
	a := NewAssembler(4, func(chunk []byte, final bool) error {
		called = true
		return nil
	})
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if called {
		t.Error("Close on an empty assembler should not invoke the callback")
	}
}

func TestAssemblerBufferedLen(t *testing.T) {
	a := NewAssembler(8, func(chunk []byte, final bool) error { return nil })
	a.Write([]byte("abc"))
	if a.BufferedLen() != 3 {
		t.Errorf("expected 3 buffered bytes, got %d", a.BufferedLen())
	}
}
