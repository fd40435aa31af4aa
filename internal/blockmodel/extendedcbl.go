package blockmodel

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/JessicaMulein/BrightChain/internal/filenameauth"
)

// extendedCBLFixedHeaderSize is the fixed portion of the header segment
// ExtendedCBL adds on top of the CBL header: fileNameLength(1) ||
// mimeTypeLength(1) || fileNameMAC(32).
const extendedCBLFixedHeaderSize = 1 + 1 + filenameauth.MACLen

// maxCosmeticFieldLength bounds fileName and mimeType, per spec.
const maxCosmeticFieldLength = 255

var ErrCosmeticFieldTooLong = errors.New("blockmodel: fileName or mimeType exceeds 255 bytes")

// ExtendedCBLBlock is a CBLBlock additionally carrying a fileName and
// mimeType, integrity-tagged by an HMAC so tampering with the cosmetic
// fields is detectable without granting them any access-control role.
type ExtendedCBLBlock struct {
	*CBLBlock
	FileName    string
	MimeType    string
	FileNameMAC [filenameauth.MACLen]byte
}

// NewExtendedCBL encodes fileName/mimeType (MAC-tagged under the creator's
// public key hash) ahead of the dense address list.
func NewExtendedCBL(blockSize BlockSize, addresses []ChecksumBuffer, originalDataLength uint64, tupleSize uint8, creator *uuid.UUID, creatorPrivateKey []byte, creatorPublicKeyHash []byte, fileName, mimeType string, opts ...func(*FromParams)) (*ExtendedCBLBlock, error) {
	if len(fileName) > maxCosmeticFieldLength || len(mimeType) > maxCosmeticFieldLength {
		return nil, ErrCosmeticFieldTooLong
	}
	if len(addresses) > extendedCBLAddressCapacity(blockSize, fileName, mimeType) {
		return nil, ErrTooManyAddresses
	}

	fa := filenameauth.New(creatorPublicKeyHash)
	defer fa.Wipe()
	mac := fa.Tag(fileName, mimeType)

	extHeader := make([]byte, 0, extendedCBLFixedHeaderSize+len(fileName)+len(mimeType))
	extHeader = append(extHeader, byte(len(fileName)), byte(len(mimeType)))
	extHeader = append(extHeader, mac[:]...)
	extHeader = append(extHeader, []byte(fileName)...)
	extHeader = append(extHeader, []byte(mimeType)...)

	cbl, err := newCBLWithTrailer(blockSize, addresses, originalDataLength, tupleSize, creator, creatorPrivateKey, extHeader, opts...)
	if err != nil {
		return nil, err
	}
	cbl.Block.BlockType = ExtendedCBL

	return &ExtendedCBLBlock{
		CBLBlock:    cbl,
		FileName:    fileName,
		MimeType:    mimeType,
		FileNameMAC: mac,
	}, nil
}

// DecodeExtendedCBL parses an ExtendedCBL block's Data, first decoding the
// CBL header and address list starting after the cosmetic-field segment.
func DecodeExtendedCBL(block *Block) (*ExtendedCBLBlock, error) {
	if len(block.Data) < cblHeaderSize+extendedCBLFixedHeaderSize {
		return nil, errors.WithStack(ErrInvalidHeader)
	}
	offset := cblHeaderSize
	fileNameLen := int(block.Data[offset])
	mimeTypeLen := int(block.Data[offset+1])
	offset += 2
	var mac [filenameauth.MACLen]byte
	copy(mac[:], block.Data[offset:offset+filenameauth.MACLen])
	offset += filenameauth.MACLen

	if offset+fileNameLen+mimeTypeLen > len(block.Data) {
		return nil, errors.WithStack(ErrInvalidHeader)
	}
	fileName := string(block.Data[offset : offset+fileNameLen])
	offset += fileNameLen
	mimeType := string(block.Data[offset : offset+mimeTypeLen])
	offset += mimeTypeLen

	// Re-decode the CBL header/address list, but with addresses starting
	// after the cosmetic-field segment rather than immediately after the
	// CBL header.
	cblView := &Block{
		BlockSize:   block.BlockSize,
		BlockType:   block.BlockType,
		DataType:    block.DataType,
		Data:        append(append([]byte{}, block.Data[:cblHeaderSize]...), block.Data[offset:]...),
		IDChecksum:  block.IDChecksum,
		DateCreated: block.DateCreated,
		Creator:     block.Creator,
	}
	cbl, err := DecodeCBL(cblView)
	if err != nil {
		return nil, err
	}
	cbl.Block = block

	return &ExtendedCBLBlock{
		CBLBlock:    cbl,
		FileName:    fileName,
		MimeType:    mimeType,
		FileNameMAC: mac,
	}, nil
}

// VerifyFileNameMAC re-derives the MAC key from the creator's public key
// hash and checks it against FileNameMAC.
func (e *ExtendedCBLBlock) VerifyFileNameMAC(creatorPublicKeyHash []byte) error {
	fa := filenameauth.New(creatorPublicKeyHash)
	defer fa.Wipe()
	return fa.Verify(e.FileName, e.MimeType, e.FileNameMAC)
}

// TotalOverhead returns the CBL header plus the cosmetic-field segment.
func (e *ExtendedCBLBlock) TotalOverhead() int {
	return cblHeaderSize + extendedCBLFixedHeaderSize + len(e.FileName) + len(e.MimeType)
}

// Capacity shadows Block.Capacity so it dispatches through ExtendedCBLBlock's
// own TotalOverhead.
func (e *ExtendedCBLBlock) Capacity() int {
	return e.BlockSize.Bytes() - e.TotalOverhead()
}

func extendedCBLAddressCapacity(blockSize BlockSize, fileName, mimeType string) int {
	usable := blockSize.Bytes() - cblHeaderSize - extendedCBLFixedHeaderSize - len(fileName) - len(mimeType)
	if usable <= 0 {
		return 0
	}
	return usable / ChecksumWidth
}

// newCBLWithTrailer builds a CBL whose Data is
// [cblHeader || trailer || addresses], where trailer is ExtendedCBL's
// cosmetic-field segment. It duplicates NewCBL's header/signature logic
// rather than composing it, since the signature digest must cover the
// trailer too.
func newCBLWithTrailer(blockSize BlockSize, addresses []ChecksumBuffer, originalDataLength uint64, tupleSize uint8, creator *uuid.UUID, creatorPrivateKey []byte, trailer []byte, opts ...func(*FromParams)) (*CBLBlock, error) {
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
	digest := cblDigest(dateCreated, originalDataLength, append(append([]byte{}, trailer...), addressBytes...))

	var signature [SignatureWidth]byte
	if creatorPrivateKey != nil {
		sig, err := signDigest(creatorPrivateKey, digest)
		if err != nil {
			return nil, err
		}
		signature = sig
	}

	header := encodeCBLHeader(signature, dateCreated, originalDataLength, uint32(len(addresses)), tupleSize)
	data := append(header, trailer...)
	data = append(data, addressBytes...)

	fromParams := params
	fromParams.Type = ExtendedCBL
	fromParams.DataType = RawDataType
	fromParams.BlockSize = blockSize
	fromParams.Data = data
	fromParams.Creator = creator
	actual := len(data)
	fromParams.ActualDataLength = &actual
	fromParams.MinimumOverhead = cblHeaderSize + len(trailer)
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
