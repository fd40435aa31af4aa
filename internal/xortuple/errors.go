package xortuple

import "github.com/pkg/errors"

var (
	ErrInvalidTupleSize = errors.New("xortuple: InvalidTupleSize")
	// ErrBlockSizesMustMatch is returned when XorPipeline detects a source
	// running short mid-stream, i.e. the operands weren't actually the
	// same size despite passing the tuple's construction-time check.
	ErrBlockSizesMustMatch = errors.New("xortuple: BlockSizesMustMatch")
	// ErrBlockSizeMismatch is NewBlockHandleTuple's construction-time
	// uniformity check against each handle's declared BlockSize.
	ErrBlockSizeMismatch = errors.New("xortuple: BlockSizeMismatch")
	ErrNoBlocksToXor     = errors.New("xortuple: NoBlocksToXor")
)
