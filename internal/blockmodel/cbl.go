package blockmodel

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cblHeaderSize is the fixed CBL header width: creatorSignature(64) ||
// dateCreated(8) || originalDataLength(8) || addressCount(4) || tupleSize(1).
const cblHeaderSize = SignatureWidth + 8 + 8 + 4 + 1

// ErrTooManyAddresses is returned when the supplied address list would not
// fit within blockSize's capacity for the CBL header.
var ErrTooManyAddresses = errors.New("blockmodel: address count exceeds CBL capacity")

// CBLBlock is a block whose payload densely lists the checksums of
// constituent blocks that, once XORed back together, reconstitute the
// original file.
type CBLBlock struct {
	*Block
	CreatorSignature   [SignatureWidth]byte
	OriginalDataLength uint64
	TupleSize          uint8
	addresses          []ChecksumBuffer
}

// CBLAddressCapacity returns floor((blockSize - headerSize) / W): the
// maximum number of constituent addresses a CBL of this size can list.
func CBLAddressCapacity(blockSize BlockSize) int {
	usable := blockSize.Bytes() - cblHeaderSize
	if usable <= 0 {
		return 0
	}
	return usable / ChecksumWidth
}

// NewCBL encodes a dense address list behind a signed CBL header and frames
// it as a Block. creatorPrivateKey signs the header+address digest.
func NewCBL(blockSize BlockSize, addresses []ChecksumBuffer, originalDataLength uint64, tupleSize uint8, creator *uuid.UUID, creatorPrivateKey []byte, opts ...func(*FromParams)) (*CBLBlock, error) {
	if len(addresses) > CBLAddressCapacity(blockSize) {
		return nil, ErrTooManyAddresses
	}

	params := FromParams{}
	for _, opt := range opts {
		opt(&params)
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	dateCreated := clock()
	if params.DateCreated != nil {
		dateCreated = *params.DateCreated
	}

	addressBytes := encodeAddresses(addresses)
	digest := cblDigest(dateCreated, originalDataLength, addressBytes)

	var signature [SignatureWidth]byte
	if creatorPrivateKey != nil {
		sig, err := signDigest(creatorPrivateKey, digest)
		if err != nil {
			return nil, err
		}
		signature = sig
	}

	header := encodeCBLHeader(signature, dateCreated, originalDataLength, uint32(len(addresses)), tupleSize)
	data := append(header, addressBytes...)

	fromParams := params
	fromParams.Type = CBL
	fromParams.DataType = RawDataType
	fromParams.BlockSize = blockSize
	fromParams.Data = data
	fromParams.Creator = creator
	actual := len(data)
	fromParams.ActualDataLength = &actual
	fromParams.MinimumOverhead = cblHeaderSize
	fromParams.DateCreated = &dateCreated

	block, err := From(fromParams)
	if err != nil {
		return nil, err
	}

	return &CBLBlock{
		Block:              block,
		CreatorSignature:   signature,
		OriginalDataLength: originalDataLength,
		TupleSize:          tupleSize,
		addresses:          addresses,
	}, nil
}

// DecodeCBL parses an already-constructed CBL Block's Data back into its
// header fields and address list.
func DecodeCBL(block *Block) (*CBLBlock, error) {
	if len(block.Data) < cblHeaderSize {
		return nil, errors.WithStack(ErrInvalidHeader)
	}
	var signature [SignatureWidth]byte
	copy(signature[:], block.Data[:SignatureWidth])
	offset := SignatureWidth

	dateCreatedMS := binary.BigEndian.Uint64(block.Data[offset : offset+8])
	offset += 8
	originalDataLength := binary.BigEndian.Uint64(block.Data[offset : offset+8])
	offset += 8
	addressCount := binary.BigEndian.Uint32(block.Data[offset : offset+4])
	offset += 4
	tupleSize := block.Data[offset]
	offset++

	needed := int(addressCount) * ChecksumWidth
	if offset+needed > len(block.Data) {
		return nil, errors.WithStack(ErrInvalidHeader)
	}
	addresses := decodeAddresses(block.Data[offset:offset+needed], int(addressCount))

	_ = dateCreatedMS // already carried on block.DateCreated; retained in header for on-disk self-description

	return &CBLBlock{
		Block:              block,
		CreatorSignature:   signature,
		OriginalDataLength: originalDataLength,
		TupleSize:          tupleSize,
		addresses:          addresses,
	}, nil
}

// Addresses returns the decoded constituent-block checksum list.
func (c *CBLBlock) Addresses() []ChecksumBuffer {
	return c.addresses
}

// TotalOverhead returns the CBL header size.
func (c *CBLBlock) TotalOverhead() int {
	return cblHeaderSize
}

// Capacity shadows Block.Capacity so it dispatches through CBLBlock's own
// TotalOverhead.
func (c *CBLBlock) Capacity() int {
	return c.BlockSize.Bytes() - c.TotalOverhead()
}

// VerifySignature checks CreatorSignature against the supplied creator
// public key.
func (c *CBLBlock) VerifySignature(creatorPublicKey []byte) bool {
	addressBytes := encodeAddresses(c.addresses)
	digest := cblDigest(c.DateCreated, c.OriginalDataLength, addressBytes)
	return verifyDigest(creatorPublicKey, digest, c.CreatorSignature)
}

func encodeAddresses(addresses []ChecksumBuffer) []byte {
	out := make([]byte, 0, len(addresses)*ChecksumWidth)
	for _, a := range addresses {
		out = append(out, a[:]...)
	}
	return out
}

func decodeAddresses(data []byte, count int) []ChecksumBuffer {
	out := make([]ChecksumBuffer, count)
	for i := 0; i < count; i++ {
		copy(out[i][:], data[i*ChecksumWidth:(i+1)*ChecksumWidth])
	}
	return out
}

func encodeCBLHeader(signature [SignatureWidth]byte, dateCreated time.Time, originalDataLength uint64, addressCount uint32, tupleSize uint8) []byte {
	header := make([]byte, cblHeaderSize)
	copy(header, signature[:])
	offset := SignatureWidth
	binary.BigEndian.PutUint64(header[offset:], uint64(dateCreated.UnixMilli()))
	offset += 8
	binary.BigEndian.PutUint64(header[offset:], originalDataLength)
	offset += 8
	binary.BigEndian.PutUint32(header[offset:], addressCount)
	offset += 4
	header[offset] = tupleSize
	return header
}

func cblDigest(dateCreated time.Time, originalDataLength uint64, addressBytes []byte) []byte {
	buf := make([]byte, 0, 16+len(addressBytes))
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], uint64(dateCreated.UnixMilli()))
	buf = append(buf, tmp[:]...)
	binary.BigEndian.PutUint64(tmp[:], originalDataLength)
	buf = append(buf, tmp[:]...)
	buf = append(buf, addressBytes...)
	sum := CalculateChecksum(buf)
	return sum[:]
}
