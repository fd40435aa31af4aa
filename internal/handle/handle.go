// Package handle implements the lazy, content-addressed reference to a
// stored block: a Handle owns no data of its own, deferring any I/O until
// Data, GetReadStream, or ValidateAsync is called.
package handle

import (
	"context"
	"crypto/sha512"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
)

// ErrCannotRead is returned by Data/GetReadStream once CanRead has been
// permanently disabled by a failed ValidateAsync.
var ErrCannotRead = errors.New("handle: CanRead is false")

// streamChunkSize bounds how much of the file is hashed per ValidateAsync
// iteration, giving the caller's context a chance to cancel between reads
// rather than only at the very end of a large (Huge) block.
const streamChunkSize = 64 * 1024

// Handle is a lazy reference to a block stored at Path under fs.
type Handle struct {
	fs afero.Fs

	Type       blockmodel.BlockType
	DataType   blockmodel.BlockDataType
	IDChecksum blockmodel.ChecksumBuffer
	BlockSize  blockmodel.BlockSize
	Path       string
	Metadata   map[string]interface{}

	canRead    bool
	canPersist bool
}

// New constructs a Handle. Handles are always constructed with canRead and
// canPersist true; a failed ValidateAsync disables canRead permanently.
func New(fs afero.Fs, path string, checksum blockmodel.ChecksumBuffer, blockSize blockmodel.BlockSize, blockType blockmodel.BlockType, dataType blockmodel.BlockDataType, metadata map[string]interface{}) *Handle {
	return &Handle{
		fs:         fs,
		Type:       blockType,
		DataType:   dataType,
		IDChecksum: checksum,
		BlockSize:  blockSize,
		Path:       path,
		Metadata:   metadata,
		canRead:    true,
		canPersist: true,
	}
}

// CanRead reports whether the handle may still be read. One-way: once
// ValidateAsync detects corruption this stays false.
func (h *Handle) CanRead() bool { return h.canRead }

// CanPersist reports whether the underlying block may still be written.
func (h *Handle) CanPersist() bool { return h.canPersist }

// DisablePersist permanently marks the handle's block as not persistable,
// e.g. once the store has already written it.
func (h *Handle) DisablePersist() { h.canPersist = false }

// Data synchronously reads the full padded blockSize bytes at Path.
func (h *Handle) Data() ([]byte, error) {
	if !h.canRead {
		return nil, errors.WithStack(ErrCannotRead)
	}
	data, err := afero.ReadFile(h.fs, h.Path)
	if err != nil {
		return nil, errors.Wrap(err, "handle: read failed")
	}
	return data, nil
}

// FullData is an alias for Data: every stored block is already padded to
// exactly BlockSize.Bytes(), so there is no separate "unpadded" view.
func (h *Handle) FullData() ([]byte, error) {
	return h.Data()
}

// GetReadStream opens a chunked reader over the block's bytes. Callers
// must Close it.
func (h *Handle) GetReadStream() (io.ReadCloser, error) {
	if !h.canRead {
		return nil, errors.WithStack(ErrCannotRead)
	}
	f, err := h.fs.Open(h.Path)
	if err != nil {
		return nil, errors.Wrap(err, "handle: open failed")
	}
	return f, nil
}

// ValidateAsync recomputes the checksum over the streamed file contents
// and compares it to IDChecksum, failing with a ChecksumMismatchError (and
// permanently disabling CanRead) on any disagreement. ctx allows the
// caller to cancel a long-running hash over a Huge block between chunks.
func (h *Handle) ValidateAsync(ctx context.Context) error {
	stream, err := h.GetReadStream()
	if err != nil {
		return err
	}
	defer stream.Close()

	hasher := sha512.New512_256()
	buf := make([]byte, streamChunkSize)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, readErr := stream.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return errors.Wrap(readErr, "handle: validate read failed")
		}
	}

	var computed blockmodel.ChecksumBuffer
	copy(computed[:], hasher.Sum(nil))
	if !blockmodel.Equals(h.IDChecksum, computed) {
		h.canRead = false
		return blockmodel.NewChecksumMismatch(h.IDChecksum, computed)
	}
	return nil
}
