package handle

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
)

func writeBlock(t *testing.T, fs afero.Fs, path string, data []byte) blockmodel.ChecksumBuffer {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, data, 0o600))
	return blockmodel.CalculateChecksum(data)
}

func TestHandleDataReadsFullBlock(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := make([]byte, blockmodel.Small.Bytes())
	for i := range data {
		data[i] = byte(i)
	}
	checksum := writeBlock(t, fs, "/store/small/aa/bb/aabb", data)

	h := New(fs, "/store/small/aa/bb/aabb", checksum, blockmodel.Small, blockmodel.RawData, blockmodel.RawDataType, nil)
	got, err := h.Data()
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestHandleValidateAsyncSucceedsOnMatchingChecksum(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := []byte("well formed block content padded to whatever size")
	checksum := writeBlock(t, fs, "/store/x", data)

	h := New(fs, "/store/x", checksum, blockmodel.Small, blockmodel.RawData, blockmodel.RawDataType, nil)
	require.NoError(t, h.ValidateAsync(context.Background()))
	require.True(t, h.CanRead())
}

func TestHandleValidateAsyncDetectsCorruption(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := []byte("original content")
	checksum := writeBlock(t, fs, "/store/y", data)

	require.NoError(t, afero.WriteFile(fs, "/store/y", []byte("tampered content!"), 0o600))

	h := New(fs, "/store/y", checksum, blockmodel.Small, blockmodel.RawData, blockmodel.RawDataType, nil)
	err := h.ValidateAsync(context.Background())
	require.Error(t, err)
	require.False(t, h.CanRead())

	_, err = h.Data()
	require.ErrorIs(t, err, ErrCannotRead)
}

func TestHandleGetReadStreamRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := []byte("streamed bytes")
	checksum := writeBlock(t, fs, "/store/z", data)

	h := New(fs, "/store/z", checksum, blockmodel.Small, blockmodel.RawData, blockmodel.RawDataType, nil)
	stream, err := h.GetReadStream()
	require.NoError(t, err)
	defer stream.Close()

	buf := make([]byte, len(data))
	_, err = stream.Read(buf)
	require.NoError(t, err)
	require.Equal(t, data, buf)
}
