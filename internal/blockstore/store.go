// Package blockstore implements the two-level hex-sharded, content-addressed
// on-disk block store: set/get/has by checksum, streaming XOR composition,
// and random-sample selection for OFF-style whitening.
package blockstore

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/handle"
	"github.com/JessicaMulein/BrightChain/internal/parallelcrypto"
	"github.com/JessicaMulein/BrightChain/internal/telemetry"
	"github.com/JessicaMulein/BrightChain/internal/tlog"
	"github.com/JessicaMulein/BrightChain/internal/xortuple"
)

// Store is a content-addressed block store rooted at a single directory,
// serving exactly one BlockSize.
type Store struct {
	fs        afero.Fs
	root      string
	blockSize blockmodel.BlockSize
	parallel  *parallelcrypto.ParallelCrypto
}

// New constructs a Store. fs is typically afero.NewOsFs() in production
// and afero.NewMemMapFs() in tests.
func New(fs afero.Fs, root string, blockSize blockmodel.BlockSize) *Store {
	return &Store{
		fs:        fs,
		root:      root,
		blockSize: blockSize,
		parallel:  parallelcrypto.New(),
	}
}

// BlockSize reports the size this store serves.
func (s *Store) BlockSize() blockmodel.BlockSize { return s.blockSize }

// Has reports whether a block with this checksum is already stored.
func (s *Store) Has(checksum blockmodel.ChecksumBuffer) (bool, error) {
	exists, err := afero.Exists(s.fs, s.blockPath(checksum))
	if err != nil {
		return false, errors.Wrap(err, "blockstore: existence check failed")
	}
	return exists, nil
}

// Get always succeeds, returning a lazy Handle whose validation is
// deferred until the caller invokes ValidateAsync.
func (s *Store) Get(checksum blockmodel.ChecksumBuffer) *handle.Handle {
	return handle.New(s.fs, s.blockPath(checksum), checksum, s.blockSize, blockmodel.RawData, blockmodel.RawDataType, nil)
}

// GetData reads the stored file and frames it as a validated Block. It
// fails with ErrKeyNotFound if absent and ErrBlockFileSizeMismatch if the
// file's length isn't exactly blockSize bytes.
func (s *Store) GetData(checksum blockmodel.ChecksumBuffer) (*blockmodel.Block, error) {
	path := s.blockPath(checksum)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			telemetry.StoreErrors.WithLabelValues("get", "key_not_found").Inc()
			return nil, errors.WithStack(ErrKeyNotFound)
		}
		telemetry.StoreErrors.WithLabelValues("get", "read_failed").Inc()
		return nil, errors.Wrap(err, "blockstore: read failed")
	}
	if len(data) != s.blockSize.Bytes() {
		telemetry.StoreErrors.WithLabelValues("get", "file_size_mismatch").Inc()
		return nil, errors.WithStack(ErrBlockFileSizeMismatch)
	}

	dateCreated := s.birthTime(path)
	block, err := blockmodel.From(blockmodel.FromParams{
		Type:        blockmodel.RawData,
		DataType:    blockmodel.RawDataType,
		BlockSize:   s.blockSize,
		Data:        data,
		Checksum:    &checksum,
		DateCreated: &dateCreated,
	})
	if err != nil {
		return nil, err
	}
	block.MarkReadable()
	telemetry.StoreGets.WithLabelValues(s.blockSize.String()).Inc()
	return block, nil
}

// SetData writes block to its content-addressed path. The store is
// immutable-by-key: a pre-existing file at the target path fails with
// ErrBlockPathAlreadyExists rather than overwriting it. The write is
// create-exclusive (temp file + atomic rename) so concurrent SetData
// calls for the same key race safely: at most one succeeds.
func (s *Store) SetData(block *blockmodel.Block) error {
	if block.BlockSize != s.blockSize {
		telemetry.StoreErrors.WithLabelValues("put", "block_size_mismatch").Inc()
		return errors.WithStack(ErrBlockSizeMismatch)
	}
	if err := block.Validate(nil); err != nil {
		telemetry.StoreErrors.WithLabelValues("put", "validation_failed").Inc()
		return errors.Wrap(ErrBlockValidationFailed, err.Error())
	}

	path := s.blockPath(block.IDChecksum)
	if exists, err := afero.Exists(s.fs, path); err != nil {
		return errors.Wrap(err, "blockstore: existence check failed")
	} else if exists {
		telemetry.StoreErrors.WithLabelValues("put", "already_exists").Inc()
		return errors.WithStack(ErrBlockPathAlreadyExists)
	}

	dir := s.shardDir(block.IDChecksum)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrap(ErrBlockDirectoryCreationFailed, err.Error())
	}

	tmpPath := fmt.Sprintf("%s.tmp-%d", path, time.Now().UnixNano())
	if err := afero.WriteFile(s.fs, tmpPath, block.Data, 0o640); err != nil {
		_ = s.fs.Remove(tmpPath)
		return errors.Wrap(err, "blockstore: write failed")
	}
	// O_CREAT|O_EXCL-equivalent test-and-create: re-check existence
	// immediately before the rename so a concurrent winner is detected
	// rather than silently overwritten.
	if exists, err := afero.Exists(s.fs, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return errors.Wrap(err, "blockstore: existence check failed")
	} else if exists {
		_ = s.fs.Remove(tmpPath)
		return errors.WithStack(ErrBlockPathAlreadyExists)
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return errors.Wrap(err, "blockstore: rename failed")
	}

	block.MarkPersisted()
	telemetry.StorePuts.WithLabelValues(s.blockSize.String()).Inc()
	tlog.Debug.Printf("blockstore: persisted %s (%s)", block.IDChecksum, s.blockSize)
	return nil
}

// Xor combines a tuple's members via the N-way XOR stream pipeline and
// persists the result as a new raw block. The tuple must already match
// this store's BlockSize. The derived block's DateCreated is taken at
// persist time, same as any other SetData call.
func (s *Store) Xor(ctx context.Context, tuple *xortuple.BlockHandleTuple) (*blockmodel.Block, error) {
	if tuple.BlockSize != s.blockSize {
		return nil, errors.WithStack(ErrBlockSizeMismatch)
	}

	combined, checksum, err := tuple.Xor(ctx, s.blockSize.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "blockstore: xor pipeline failed")
	}

	block, err := blockmodel.From(blockmodel.FromParams{
		Type:      blockmodel.RawData,
		DataType:  blockmodel.RawDataType,
		BlockSize: s.blockSize,
		Data:      combined,
		Checksum:  &checksum,
	})
	if err != nil {
		return nil, err
	}
	if err := s.SetData(block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *Store) birthTime(path string) time.Time {
	info, err := s.fs.Stat(path)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}
