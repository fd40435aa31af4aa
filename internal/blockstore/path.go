package blockstore

import (
	"path/filepath"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
)

// metaSuffix marks the optional structured-metadata sidecar; sidecars are
// excluded from random-sampling enumeration.
const metaSuffix = ".m.json"

// blockPath returns <root>/<sizeLabel>/<hex[0:2]>/<hex[2:4]>/<fullHex>.
func (s *Store) blockPath(checksum blockmodel.ChecksumBuffer) string {
	hexStr := checksum.String()
	return filepath.Join(s.root, s.blockSize.String(), hexStr[0:2], hexStr[2:4], hexStr)
}

// shardDir returns the two-level shard directory a block's file lives in,
// without the filename itself.
func (s *Store) shardDir(checksum blockmodel.ChecksumBuffer) string {
	hexStr := checksum.String()
	return filepath.Join(s.root, s.blockSize.String(), hexStr[0:2], hexStr[2:4])
}

// metaPath returns the sidecar metadata path for a block.
func (s *Store) metaPath(checksum blockmodel.ChecksumBuffer) string {
	return s.blockPath(checksum) + metaSuffix
}

// sizeRootDir returns <root>/<sizeLabel>, the top of this store's shard tree.
func (s *Store) sizeRootDir() string {
	return filepath.Join(s.root, s.blockSize.String())
}
