package blockstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetRandomBlocksOnEmptyStoreReturnsNil(t *testing.T) {
	store := newTestStore(t)
	got, err := store.GetRandomBlocks(3)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGetRandomBlocksRejectsNonPositiveCount(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRandomBlocks(0)
	require.ErrorIs(t, err, ErrNoBlocksProvided)
}

func TestGetRandomBlocksSamplesDistinctStoredChecksums(t *testing.T) {
	store := newTestStore(t)
	seeds := []string{"alpha operand", "beta operand", "gamma operand", "delta operand", "epsilon operand"}
	var checksums []string
	for _, seed := range seeds {
		block := makeBlock(t, []byte(seed))
		require.NoError(t, store.SetData(block))
		checksums = append(checksums, block.IDChecksum.String())
	}

	got, err := store.GetRandomBlocks(3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	seen := map[string]bool{}
	for _, c := range got {
		require.False(t, seen[c.String()], "sampled the same checksum twice")
		seen[c.String()] = true
		require.Contains(t, checksums, c.String())
	}
}

func TestGetRandomBlocksCapsAtStoreSize(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SetData(makeBlock(t, []byte("only one block"))))

	got, err := store.GetRandomBlocks(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
