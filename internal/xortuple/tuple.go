package xortuple

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/handle"
)

// TupleSize is the fixed operand count a BlockHandleTuple carries. Three
// operands (two whitening blocks plus the data block, or any rotation
// thereof) is the configuration every Testable Property in this package
// exercises; a differently-sized deployment would need its own constant.
const TupleSize = 3

// BlockHandleTuple is a fixed-arity collection of block Handles destined
// for the XOR pipeline. All members must share a BlockSize.
type BlockHandleTuple struct {
	Handles   []*handle.Handle
	BlockSize blockmodel.BlockSize
}

// NewBlockHandleTuple validates arity and size uniformity before
// admitting handles into a tuple.
func NewBlockHandleTuple(handles []*handle.Handle) (*BlockHandleTuple, error) {
	if len(handles) != TupleSize {
		return nil, ErrInvalidTupleSize
	}
	size := handles[0].BlockSize
	for _, h := range handles[1:] {
		if h.BlockSize != size {
			return nil, ErrBlockSizeMismatch
		}
	}
	return &BlockHandleTuple{Handles: handles, BlockSize: size}, nil
}

// Verify validates every member handle's content against its address,
// returning the first failure encountered.
func (t *BlockHandleTuple) Verify(ctx context.Context) error {
	for _, h := range t.Handles {
		if err := h.ValidateAsync(ctx); err != nil {
			return errors.Wrapf(err, "xortuple: tuple member %s failed validation", h.IDChecksum)
		}
	}
	return nil
}

// OpenStreams opens a read stream for every member handle, in tuple
// order. On any failure, every stream already opened is closed before
// the error is returned, so a partial tuple never leaks descriptors.
func (t *BlockHandleTuple) OpenStreams() ([]io.ReadCloser, error) {
	streams := make([]io.ReadCloser, 0, len(t.Handles))
	for _, h := range t.Handles {
		s, err := h.GetReadStream()
		if err != nil {
			closeAll(streams)
			return nil, err
		}
		streams = append(streams, s)
	}
	return streams, nil
}

func closeAll(streams []io.ReadCloser) {
	for _, s := range streams {
		_ = s.Close()
	}
}

// readersOf adapts a slice of io.ReadCloser to io.Reader for XorPipeline.
func readersOf(streams []io.ReadCloser) []io.Reader {
	out := make([]io.Reader, len(streams))
	for i, s := range streams {
		out[i] = s
	}
	return out
}

// Xor streams every member's content through the N-way XOR transform and
// returns the combined payload and its checksum. blockSize must match the
// tuple's own BlockSize; callers normally pass t.BlockSize.Bytes().
func (t *BlockHandleTuple) Xor(ctx context.Context, blockSize int) ([]byte, blockmodel.ChecksumBuffer, error) {
	streams, err := t.OpenStreams()
	if err != nil {
		var zero blockmodel.ChecksumBuffer
		return nil, zero, err
	}
	defer closeAll(streams)
	return XorPipeline(ctx, readersOf(streams), blockSize)
}
