package blockmodel

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// State is the Block lifecycle state machine: Constructed -> Validated ->
// Persisted -> Readable. canRead/canPersist gate operations and, once
// false, never become true again.
type State int

const (
	Constructed State = iota
	Validated
	Persisted
	Readable
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "Constructed"
	case Validated:
		return "Validated"
	case Persisted:
		return "Persisted"
	case Readable:
		return "Readable"
	default:
		return "Unknown"
	}
}

// Clock supplies "now" for the date invariant; defaults to time.Now but is
// overridable so tests can exercise FutureCreationDate deterministically.
type Clock func() time.Time

// Block is the base, variant-independent record: exactly BlockSize.Bytes()
// bytes, addressed by a checksum computed over those bytes.
type Block struct {
	BlockSize   BlockSize
	BlockType   BlockType
	DataType    BlockDataType
	Data        []byte
	IDChecksum  ChecksumBuffer
	DateCreated time.Time
	Creator     *uuid.UUID

	state      State
	canRead    bool
	canPersist bool
}

// FromParams are the inputs to From, mirroring the spec's
// from(type, dataType, blockSize, data, checksum?, creator?, dateCreated?,
// actualDataLength?, canRead=true, canPersist=true) factory signature.
type FromParams struct {
	Type             BlockType
	DataType         BlockDataType
	BlockSize        BlockSize
	Data             []byte
	Checksum         *ChecksumBuffer
	Creator          *uuid.UUID
	DateCreated      *time.Time
	ActualDataLength *int
	CanRead          *bool
	CanPersist       *bool

	// MinimumOverhead is the variant's minimumLayerOverhead: the shortest
	// data length the layer's header requires before any payload. Encrypted
	// blocks pass ecies.Overhead(); raw/CBL pass their own header sizes.
	MinimumOverhead int

	// RandomSource overrides the padding source; nil defaults to
	// crypto/rand.Reader.
	RandomSource io.Reader
	// Clock overrides "now"; nil defaults to time.Now.
	Clock Clock
}

// From implements the Block Core validation order verbatim: each step
// surfaces the first failure.
func From(p FromParams) (*Block, error) {
	blockSize := p.BlockSize.Bytes()

	// 1. data.length >= minimumLayerOverhead for the requested variant.
	if len(p.Data) < p.MinimumOverhead {
		return nil, errors.WithStack(ErrDataLengthTooShort)
	}

	// 2. data.length <= blockSize.
	if len(p.Data) > blockSize {
		return nil, errors.WithStack(ErrDataLengthExceedsCapacity)
	}

	// 3. If actualDataLength provided: actualDataLength <= blockSize - totalOverhead.
	if p.ActualDataLength != nil {
		if *p.ActualDataLength > blockSize-p.MinimumOverhead {
			return nil, errors.WithStack(ErrDataLengthExceedsCapacity)
		}
	}

	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	now := clock()

	dateCreated := now
	if p.DateCreated != nil {
		dateCreated = *p.DateCreated
	}

	// 4. dateCreated <= now.
	if dateCreated.After(now) {
		return nil, errors.WithStack(ErrFutureCreationDate)
	}

	randSource := p.RandomSource
	if randSource == nil {
		randSource = rand.Reader
	}

	// 5. Allocate a buffer of exactly blockSize filled with random bytes;
	// copy supplied data into its prefix.
	finalBuffer := make([]byte, blockSize)
	if _, err := io.ReadFull(randSource, finalBuffer); err != nil {
		return nil, errors.Wrap(err, "blockmodel: failed to generate padding")
	}
	copy(finalBuffer, p.Data)

	// 6. Compute checksum(finalBuffer); compare against any supplied checksum.
	computed := CalculateChecksum(finalBuffer)
	if p.Checksum != nil && !Equals(*p.Checksum, computed) {
		return nil, NewChecksumMismatch(*p.Checksum, computed)
	}

	canRead := true
	if p.CanRead != nil {
		canRead = *p.CanRead
	}
	canPersist := true
	if p.CanPersist != nil {
		canPersist = *p.CanPersist
	}

	// 7. Return a new Block with data = finalBuffer, checksum stored.
	return &Block{
		BlockSize:   p.BlockSize,
		BlockType:   p.Type,
		DataType:    p.DataType,
		Data:        finalBuffer,
		IDChecksum:  computed,
		DateCreated: dateCreated,
		Creator:     p.Creator,
		state:       Constructed,
		canRead:     canRead,
		canPersist:  canPersist,
	}, nil
}

// CanRead reports whether the block may still be read. One-way: once
// false, Disable makes it permanent.
func (b *Block) CanRead() bool { return b.canRead }

// CanPersist reports whether the block may still be written to the store.
func (b *Block) CanPersist() bool { return b.canPersist }

// State returns the block's current lifecycle state.
func (b *Block) State() State { return b.state }

// MarkPersisted transitions Constructed/Validated -> Persisted. Callers in
// internal/blockstore invoke this after a successful setData.
func (b *Block) MarkPersisted() {
	b.state = Persisted
}

// MarkReadable transitions Persisted -> Readable, e.g. once
// internal/blockstore's GetData has re-read and checksum-verified the
// on-disk bytes.
func (b *Block) MarkReadable() {
	b.state = Readable
}

// DisableRead permanently clears canRead, e.g. after a validation failure.
func (b *Block) DisableRead() {
	b.canRead = false
}

// DisablePersist permanently clears canPersist, e.g. once a block has been
// written and must not be written again.
func (b *Block) DisablePersist() {
	b.canPersist = false
}

// Validate recomputes the checksum over Data and compares it against
// IDChecksum, additionally rechecking the date invariant. Never fails for
// a correctly constructed Block except on corruption; on failure it
// disables further reads.
func (b *Block) Validate(clock Clock) error {
	if clock == nil {
		clock = time.Now
	}
	computed := CalculateChecksum(b.Data)
	if !Equals(b.IDChecksum, computed) {
		b.DisableRead()
		return NewChecksumMismatch(b.IDChecksum, computed)
	}
	if b.DateCreated.After(clock()) {
		b.DisableRead()
		return errors.WithStack(ErrFutureCreationDate)
	}
	b.state = Validated
	return nil
}

// TotalOverhead returns the number of header bytes this block's variant
// reserves at the front of Data. Raw/ephemeral blocks carry no header.
func (b *Block) TotalOverhead() int {
	return 0
}

// Capacity returns blockSize - totalOverhead: the usable payload window.
func (b *Block) Capacity() int {
	return b.BlockSize.Bytes() - b.TotalOverhead()
}

// LayerHeaderData returns the header bytes at the front of Data for this
// layer (empty for the base/raw variant).
func (b *Block) LayerHeaderData() []byte {
	return b.Data[:b.TotalOverhead()]
}

// Payload returns Data minus LayerHeaderData.
func (b *Block) Payload() []byte {
	return b.Data[b.TotalOverhead():]
}
