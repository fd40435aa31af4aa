package blockstore

import (
	"crypto/rand"
	"math/big"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
)

// GetRandomBlocks samples up to count distinct checksums from the store by
// recursing its two shard levels. Missing or emptied shard directories are
// skipped rather than treated as errors; fewer than count checksums may be
// returned if the store doesn't hold enough blocks.
func (s *Store) GetRandomBlocks(count int) ([]blockmodel.ChecksumBuffer, error) {
	if count <= 0 {
		return nil, ErrNoBlocksProvided
	}

	topLevel, err := afero.ReadDir(s.fs, s.sizeRootDir())
	if err != nil {
		// An empty/nonexistent store has no candidates to sample.
		return nil, nil
	}

	var shardDirs []string
	for _, entry := range topLevel {
		if entry.IsDir() {
			shardDirs = append(shardDirs, entry.Name())
		}
	}
	if len(shardDirs) == 0 {
		return nil, nil
	}

	var (
		mu         sync.Mutex
		candidates []blockmodel.ChecksumBuffer
	)
	s.parallel.ProcessBlocksParallel(len(shardDirs), func(startIdx, endIdx int) {
		var local []blockmodel.ChecksumBuffer
		for i := startIdx; i < endIdx; i++ {
			local = append(local, s.scanShard(shardDirs[i])...)
		}
		if len(local) == 0 {
			return
		}
		mu.Lock()
		candidates = append(candidates, local...)
		mu.Unlock()
	})

	if len(candidates) == 0 {
		return nil, nil
	}
	return sampleWithoutReplacement(candidates, count)
}

// scanShard lists every second-level directory under a top-level shard and
// collects the checksums of every non-sidecar file found there.
func (s *Store) scanShard(hex0 string) []blockmodel.ChecksumBuffer {
	root := s.sizeRootDir() + "/" + hex0

	level1, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil
	}

	var out []blockmodel.ChecksumBuffer
	for _, l1 := range level1 {
		if !l1.IsDir() {
			continue
		}
		dir := root + "/" + l1.Name()
		entries, err := afero.ReadDir(s.fs, dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasSuffix(e.Name(), metaSuffix) || strings.Contains(e.Name(), ".tmp-") {
				continue
			}
			checksum, err := blockmodel.ChecksumFromHex(e.Name())
			if err != nil {
				continue
			}
			out = append(out, checksum)
		}
	}
	return out
}

// sampleWithoutReplacement performs a partial Fisher-Yates shuffle using a
// CSPRNG and returns the first min(count, len(candidates)) elements.
func sampleWithoutReplacement(candidates []blockmodel.ChecksumBuffer, count int) ([]blockmodel.ChecksumBuffer, error) {
	pool := append([]blockmodel.ChecksumBuffer{}, candidates...)
	if count > len(pool) {
		count = len(pool)
	}
	for i := 0; i < count; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return nil, err
		}
		j := i + int(n.Int64())
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count], nil
}
