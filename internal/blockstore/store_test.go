package blockstore

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/handle"
	"github.com/JessicaMulein/BrightChain/internal/xortuple"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(afero.NewMemMapFs(), "/blocks", blockmodel.Small)
}

func makeBlock(t *testing.T, data []byte) *blockmodel.Block {
	t.Helper()
	block, err := blockmodel.From(blockmodel.FromParams{
		Type:      blockmodel.RawData,
		DataType:  blockmodel.RawDataType,
		BlockSize: blockmodel.Small,
		Data:      data,
	})
	require.NoError(t, err)
	return block
}

func TestSetDataThenGetDataRoundTrips(t *testing.T) {
	store := newTestStore(t)
	block := makeBlock(t, []byte("hello brightchain"))

	require.NoError(t, store.SetData(block))

	has, err := store.Has(block.IDChecksum)
	require.NoError(t, err)
	require.True(t, has)

	got, err := store.GetData(block.IDChecksum)
	require.NoError(t, err)
	require.Equal(t, block.Data, got.Data)
}

func TestSetDataRejectsDuplicateKey(t *testing.T) {
	store := newTestStore(t)
	block := makeBlock(t, []byte("first write wins"))

	require.NoError(t, store.SetData(block))

	// A second write of the identical framed block must be rejected
	// without touching the existing file.
	err := store.SetData(block)
	require.ErrorIs(t, err, ErrBlockPathAlreadyExists)
}

func TestSetDataRejectsWrongBlockSize(t *testing.T) {
	store := newTestStore(t)
	block, err := blockmodel.From(blockmodel.FromParams{
		Type:      blockmodel.RawData,
		DataType:  blockmodel.RawDataType,
		BlockSize: blockmodel.Medium,
		Data:      []byte("wrong size for this store"),
	})
	require.NoError(t, err)

	err = store.SetData(block)
	require.ErrorIs(t, err, ErrBlockSizeMismatch)
}

func TestGetDataMissingKeyFails(t *testing.T) {
	store := newTestStore(t)
	var checksum blockmodel.ChecksumBuffer
	_, err := store.GetData(checksum)
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGetDataDetectsSizeCorruption(t *testing.T) {
	store := newTestStore(t)
	block := makeBlock(t, []byte("size corruption probe"))
	require.NoError(t, store.SetData(block))

	truncated := block.Data[:len(block.Data)-1]
	require.NoError(t, afero.WriteFile(store.fs, store.blockPath(block.IDChecksum), truncated, 0o640))

	_, err := store.GetData(block.IDChecksum)
	require.ErrorIs(t, err, ErrBlockFileSizeMismatch)
}

func TestStoreXorRoundTripsThroughTuple(t *testing.T) {
	store := newTestStore(t)
	a := makeBlock(t, []byte("operand a"))
	b := makeBlock(t, []byte("operand b"))
	c := makeBlock(t, []byte("operand c"))
	require.NoError(t, store.SetData(a))
	require.NoError(t, store.SetData(b))
	require.NoError(t, store.SetData(c))

	tuple, err := xortuple.NewBlockHandleTuple([]*handle.Handle{
		store.Get(a.IDChecksum),
		store.Get(b.IDChecksum),
		store.Get(c.IDChecksum),
	})
	require.NoError(t, err)

	derived, err := store.Xor(context.Background(), tuple)
	require.NoError(t, err)

	recoverTuple, err := xortuple.NewBlockHandleTuple([]*handle.Handle{
		store.Get(derived.IDChecksum),
		store.Get(b.IDChecksum),
		store.Get(c.IDChecksum),
	})
	require.NoError(t, err)

	recovered, _, err := recoverTuple.Xor(context.Background(), store.BlockSize().Bytes())
	require.NoError(t, err)
	require.Equal(t, a.Data, recovered)
}
