package blockmodel

import (
	"time"

	"github.com/google/uuid"
)

// Ephemeral is a Block carrying in-memory-only metadata about the payload
// it wraps: its true length before random padding, its creator, and
// whether that payload is itself ciphertext. None of this metadata is
// persisted alongside the block's bytes; a reader reconstructs it out of
// band (e.g. from a CBL entry) rather than from the file itself.
type Ephemeral struct {
	*Block
	LengthWithoutPadding int
	Encrypted            bool
}

// NewEphemeral constructs an Ephemeral block: the raw (possibly already
// encrypted) payload framed to blockSize with random padding.
func NewEphemeral(blockSize BlockSize, data []byte, creator *uuid.UUID, actualDataLength int, encrypted bool, opts ...func(*FromParams)) (*Ephemeral, error) {
	params := FromParams{
		Type:             EphemeralBlock,
		DataType:         RawDataType,
		BlockSize:        blockSize,
		Data:             data,
		Creator:          creator,
		ActualDataLength: &actualDataLength,
		MinimumOverhead:  0,
	}
	if encrypted {
		params.DataType = EncryptedDataType
	}
	for _, opt := range opts {
		opt(&params)
	}

	block, err := From(params)
	if err != nil {
		return nil, err
	}
	return &Ephemeral{
		Block:                block,
		LengthWithoutPadding: actualDataLength,
		Encrypted:            encrypted,
	}, nil
}

// WithDateCreated overrides the dateCreated field passed to From, for
// callers (and tests) that need an explicit timestamp rather than "now".
func WithDateCreated(t time.Time) func(*FromParams) {
	return func(p *FromParams) { p.DateCreated = &t }
}

// WithChecksum supplies a pre-computed checksum for From to verify against.
func WithChecksum(c ChecksumBuffer) func(*FromParams) {
	return func(p *FromParams) { p.Checksum = &c }
}

// WithClock overrides From's notion of "now".
func WithClock(c Clock) func(*FromParams) {
	return func(p *FromParams) { p.Clock = c }
}
