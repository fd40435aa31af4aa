package xortuple

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
)

func randomBlock(t *testing.T, size int) []byte {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte((i * 37) % 251)
	}
	return data
}

func toReaders(bufs ...[]byte) []io.Reader {
	out := make([]io.Reader, len(bufs))
	for i, b := range bufs {
		out[i] = bytes.NewReader(b)
	}
	return out
}

func TestXorPipelineRejectsFewerThanTwoSources(t *testing.T) {
	_, _, err := XorPipeline(context.Background(), toReaders(randomBlock(t, 16)), 16)
	require.ErrorIs(t, err, ErrNoBlocksToXor)
}

func TestXorPipelineIsSelfInverse(t *testing.T) {
	size := blockmodel.Small.Bytes()
	a := randomBlock(t, size)
	b := randomBlock(t, size)
	c := randomBlock(t, size)

	combined, checksum, err := XorPipeline(context.Background(), toReaders(a, b, c), size)
	require.NoError(t, err)
	require.Len(t, combined, size)
	require.Equal(t, blockmodel.CalculateChecksum(combined), checksum)

	recovered, _, err := XorPipeline(context.Background(), toReaders(combined, b, c), size)
	require.NoError(t, err)
	require.True(t, bytes.Equal(a, recovered))
}

func TestXorPipelineDetectsSizeTruncation(t *testing.T) {
	size := blockmodel.Small.Bytes()
	a := randomBlock(t, size)
	short := randomBlock(t, size/2)

	_, _, err := XorPipeline(context.Background(), toReaders(a, short), size)
	require.ErrorIs(t, err, ErrBlockSizesMustMatch)
}
