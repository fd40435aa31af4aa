// Package xortuple implements the N-way XOR stream transform that
// composes (or decomposes) whitened blocks, and the fixed-arity
// BlockHandleTuple collection the Disk Block Store's xor operation
// operates over.
package xortuple

import (
	"context"
	"crypto/sha512"
	"io"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/JessicaMulein/BrightChain/internal/blockmodel"
	"github.com/JessicaMulein/BrightChain/internal/telemetry"
)

// chunkSize bounds how much of each source is read per pipeline
// iteration, keeping memory use independent of blockSize (Huge blocks
// never need to fit whole in RAM at once).
const chunkSize = 64 * 1024

// XorPipeline combines len(sources) >= 2 equally-sized streams into one
// derived block: N source streams -> N-way XOR transform emitting chunks
// whose i-th byte is the XOR of the i-th byte of each operand chunk ->
// checksum transform computing the content hash as bytes pass. Any source
// error aborts the pipeline (via errgroup's shared context) and no
// partial result is returned.
func XorPipeline(ctx context.Context, sources []io.Reader, blockSize int) ([]byte, blockmodel.ChecksumBuffer, error) {
	var zero blockmodel.ChecksumBuffer
	if len(sources) < 2 {
		return nil, zero, ErrNoBlocksToXor
	}

	start := time.Now()
	defer func() {
		telemetry.XorDuration.Observe(time.Since(start).Seconds())
	}()

	result := make([]byte, 0, blockSize)
	hasher := sha512.New512_256()

	buffers := make([][]byte, len(sources))
	for i := range buffers {
		buffers[i] = make([]byte, chunkSize)
	}

	remaining := blockSize
	for remaining > 0 {
		n := chunkSize
		if remaining < n {
			n = remaining
		}

		g, gctx := errgroup.WithContext(ctx)
		for i, src := range sources {
			i, src := i, src
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				_, err := io.ReadFull(src, buffers[i][:n])
				return err
			})
		}
		if err := g.Wait(); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return nil, zero, errors.Wrap(ErrBlockSizesMustMatch, err.Error())
			}
			return nil, zero, errors.Wrap(err, "xortuple: source read failed")
		}

		xored := make([]byte, n)
		for b := 0; b < n; b++ {
			var v byte
			for s := range sources {
				v ^= buffers[s][b]
			}
			xored[b] = v
		}

		hasher.Write(xored)
		result = append(result, xored...)
		telemetry.XorBytesProcessed.Add(float64(n))
		remaining -= n
	}

	var checksum blockmodel.ChecksumBuffer
	copy(checksum[:], hasher.Sum(nil))
	return result, checksum, nil
}
