package blockmodel

import (
	"github.com/google/uuid"

	"github.com/JessicaMulein/BrightChain/internal/ecies"
)

// Encrypted derives from Ephemeral once its payload has been ECIES-wrapped:
// TotalOverhead is fixed at eciesOverheadLength (97 bytes), and Payload is
// everything past that header.
type Encrypted struct {
	*Ephemeral
}

// NewEncrypted constructs an Encrypted block. data must already contain the
// ECIES envelope (header || ciphertext) framed at the front.
func NewEncrypted(blockSize BlockSize, data []byte, creator *uuid.UUID, actualDataLength int, opts ...func(*FromParams)) (*Encrypted, error) {
	overhead := ecies.Overhead()
	params := FromParams{
		Type:             EncryptedOwnedData,
		DataType:         EncryptedDataType,
		BlockSize:        blockSize,
		Data:             data,
		Creator:          creator,
		ActualDataLength: &actualDataLength,
		MinimumOverhead:  overhead,
	}
	for _, opt := range opts {
		opt(&params)
	}

	block, err := From(params)
	if err != nil {
		return nil, err
	}
	return &Encrypted{
		Ephemeral: &Ephemeral{
			Block:                block,
			LengthWithoutPadding: actualDataLength,
			Encrypted:            true,
		},
	}, nil
}

// TotalOverhead returns eciesOverheadLength (97 bytes): the fixed ECIES
// envelope header every encrypted block carries.
func (e *Encrypted) TotalOverhead() int {
	return ecies.Overhead()
}

// Capacity shadows Block.Capacity so it dispatches through Encrypted's own
// TotalOverhead rather than the base (zero-overhead) implementation, per
// the variant-dispatched capacity/overhead design.
func (e *Encrypted) Capacity() int {
	return e.BlockSize.Bytes() - e.TotalOverhead()
}

// Payload returns data[overhead:], the ECIES ciphertext (including its
// random pad) without the envelope header.
func (e *Encrypted) Payload() []byte {
	return e.Data[e.TotalOverhead():]
}

// PayloadLength reports the allocated payload window: blockSize - overhead.
// This is the capacity available to ciphertext, not LengthWithoutPadding
// (the true pre-padding plaintext length, which lives in metadata).
func (e *Encrypted) PayloadLength() int {
	return e.BlockSize.Bytes() - e.TotalOverhead()
}

// EnvelopeHeader returns the ECIES header bytes at the front of Data.
func (e *Encrypted) EnvelopeHeader() []byte {
	return e.Data[:e.TotalOverhead()]
}
