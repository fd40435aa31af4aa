// Package ingest assembles an arbitrary-length stream of application writes
// into a sequence of exactly-blockSize plaintext chunks, ready to be handed
// one by one through the Symmetric Codec, ECIES envelope, and Block Core on
// their way into the Disk Block Store. The final chunk of a stream may be
// shorter than blockSize; Block Core's random-padding step is what brings it
// up to the fixed size on disk.
package ingest

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrClosed is returned by Write after Close has flushed the assembler.
var ErrClosed = errors.New("ingest: assembler already closed")

// BlockReadyFunc receives one assembled chunk. final is true only for the
// last chunk of a stream, which may be shorter than blockSize.
type BlockReadyFunc func(chunk []byte, final bool) error

// Assembler buffers incoming writes and emits exactly-blockSize chunks via
// its BlockReadyFunc as soon as enough bytes have accumulated.
type Assembler struct {
	blockSize int
	onBlock   BlockReadyFunc

	mutex  sync.Mutex
	buffer []byte
	closed bool
}

// NewAssembler creates an Assembler that emits blockSize-sized chunks.
func NewAssembler(blockSize int, onBlock BlockReadyFunc) *Assembler {
	return &Assembler{
		blockSize: blockSize,
		onBlock:   onBlock,
		buffer:    make([]byte, 0, blockSize),
	}
}

// Write appends data to the assembler, flushing full blocks as they
// accumulate. Partial data is held until either enough arrives to complete a
// block or Close is called.
func (a *Assembler) Write(data []byte) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.closed {
		return ErrClosed
	}

	a.buffer = append(a.buffer, data...)
	for len(a.buffer) >= a.blockSize {
		chunk := a.buffer[:a.blockSize]
		if err := a.onBlock(chunk, false); err != nil {
			return err
		}
		a.buffer = a.buffer[a.blockSize:]
	}
	return nil
}

// Close flushes any remaining partial block as the final chunk and marks the
// assembler closed. Calling Close on an empty buffer emits nothing.
func (a *Assembler) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	if len(a.buffer) == 0 {
		return nil
	}
	remainder := a.buffer
	a.buffer = nil
	return a.onBlock(remainder, true)
}

// BufferedLen returns the number of bytes currently buffered, awaiting a
// full block or Close.
func (a *Assembler) BufferedLen() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return len(a.buffer)
}
