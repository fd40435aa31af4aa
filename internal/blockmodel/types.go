package blockmodel

// BlockType tags the role a block plays, distinguished from BlockDataType
// (its payload's shape). Not stored on disk: it is contextual metadata
// carried by in-memory wrappers and, for CBL members, derived by the
// reader from the enumerating CBL rather than self-declared.
type BlockType int

const (
	RawData BlockType = iota
	EncryptedOwnedData
	CBL
	ExtendedCBL
	HandleBlock
	RandomWhitening
	EphemeralBlock
)

func (t BlockType) String() string {
	switch t {
	case RawData:
		return "RawData"
	case EncryptedOwnedData:
		return "EncryptedOwnedData"
	case CBL:
		return "CBL"
	case ExtendedCBL:
		return "ExtendedCBL"
	case HandleBlock:
		return "Handle"
	case RandomWhitening:
		return "RandomWhitening"
	case EphemeralBlock:
		return "Ephemeral"
	default:
		return "Unknown"
	}
}

// BlockDataType tags the shape of a block's payload bytes.
type BlockDataType int

const (
	RawDataType BlockDataType = iota
	EncryptedDataType
	EphemeralStructuredDataType
)

func (t BlockDataType) String() string {
	switch t {
	case RawDataType:
		return "RawData"
	case EncryptedDataType:
		return "EncryptedData"
	case EphemeralStructuredDataType:
		return "EphemeralStructuredData"
	default:
		return "Unknown"
	}
}
