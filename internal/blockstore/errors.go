package blockstore

import "github.com/pkg/errors"

var (
	ErrKeyNotFound                  = errors.New("blockstore: KeyNotFound")
	ErrBlockPathAlreadyExists       = errors.New("blockstore: BlockPathAlreadyExists")
	ErrBlockFileSizeMismatch        = errors.New("blockstore: BlockFileSizeMismatch")
	ErrBlockValidationFailed        = errors.New("blockstore: BlockValidationFailed")
	ErrBlockDirectoryCreationFailed = errors.New("blockstore: BlockDirectoryCreationFailed")
	ErrNoBlocksProvided             = errors.New("blockstore: NoBlocksProvided")
	ErrBlockSizeMismatch            = errors.New("blockstore: BlockSizeMismatch")
)
