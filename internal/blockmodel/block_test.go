package blockmodel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Scenario 1: round-trip small encrypted block. 97 bytes of ECIES-shaped
// header (all-zero stand-in for a real envelope) plus zero payload.
func TestScenarioRoundTripSmallBlock(t *testing.T) {
	header := make([]byte, 97)
	header[0] = 0x04
	actual := len(header)

	enc, err := NewEncrypted(Small, header, nil, actual)
	require.NoError(t, err)
	require.Len(t, enc.Data, Small.Bytes())

	want := CalculateChecksum(enc.Data)
	require.True(t, Equals(want, enc.IDChecksum))

	require.NoError(t, enc.Validate(nil))
}

// Scenario 2: detect corruption via a caller-supplied stale checksum.
func TestScenarioDetectCorruption(t *testing.T) {
	data := make([]byte, Small.Bytes())
	for i := range data {
		data[i] = byte(i)
	}
	original := CalculateChecksum(data)

	corrupted := append([]byte{}, data...)
	corrupted[0] ^= 0xFF

	_, err := From(FromParams{
		Type:      RawData,
		DataType:  RawDataType,
		BlockSize: Small,
		Data:      corrupted,
		Checksum:  &original,
	})
	require.Error(t, err)
	mismatch, ok := IsChecksumMismatch(err)
	require.True(t, ok, "expected a ChecksumMismatchError")
	require.True(t, Equals(mismatch.Expected, original))
}

// Scenario 3: future creation date is rejected.
func TestScenarioFutureCreationDate(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	_, err := From(FromParams{
		Type:        RawData,
		DataType:    RawDataType,
		BlockSize:   Small,
		Data:        []byte("hi"),
		DateCreated: &future,
	})
	require.ErrorIs(t, err, ErrFutureCreationDate)
}

// Scenario 6: oversize data is rejected before any padding occurs.
func TestScenarioOversizeRejection(t *testing.T) {
	data := make([]byte, Small.Bytes()+1)
	_, err := From(FromParams{
		Type:      RawData,
		DataType:  RawDataType,
		BlockSize: Small,
		Data:      data,
	})
	require.ErrorIs(t, err, ErrDataLengthExceedsCapacity)
}

func TestFromValidationOrderDataTooShort(t *testing.T) {
	_, err := From(FromParams{
		Type:            RawData,
		DataType:        RawDataType,
		BlockSize:       Small,
		Data:            []byte{0x01},
		MinimumOverhead: 10,
	})
	require.ErrorIs(t, err, ErrDataLengthTooShort)
}

func TestFromValidationOrderActualDataLengthExceedsCapacity(t *testing.T) {
	data := make([]byte, 10)
	actual := Small.Bytes() + 1
	_, err := From(FromParams{
		Type:             RawData,
		DataType:         RawDataType,
		BlockSize:        Small,
		Data:             data,
		ActualDataLength: &actual,
	})
	require.ErrorIs(t, err, ErrDataLengthExceedsCapacity)
}

func TestFromPadsToExactBlockSize(t *testing.T) {
	block, err := From(FromParams{
		Type:      RawData,
		DataType:  RawDataType,
		BlockSize: Small,
		Data:      []byte("short payload"),
	})
	require.NoError(t, err)
	require.Len(t, block.Data, Small.Bytes())
	require.True(t, bytes.HasPrefix(block.Data, []byte("short payload")))
}

// Padding invariant: identical short inputs produce blocks whose payload
// prefix matches but whose padding tails (and therefore checksums) differ
// with overwhelming probability.
func TestFromRandomPaddingDiffersAcrossCalls(t *testing.T) {
	payload := []byte("identical payload")
	a, err := From(FromParams{Type: RawData, DataType: RawDataType, BlockSize: Small, Data: payload})
	require.NoError(t, err)
	b, err := From(FromParams{Type: RawData, DataType: RawDataType, BlockSize: Small, Data: payload})
	require.NoError(t, err)

	require.True(t, bytes.Equal(a.Data[:len(payload)], b.Data[:len(payload)]))
	require.False(t, bytes.Equal(a.Data[len(payload):], b.Data[len(payload):]))
	require.False(t, Equals(a.IDChecksum, b.IDChecksum))
}

func TestValidateDisablesReadOnCorruption(t *testing.T) {
	block, err := From(FromParams{Type: RawData, DataType: RawDataType, BlockSize: Small, Data: []byte("x")})
	require.NoError(t, err)

	block.Data[0] ^= 0xFF
	err = block.Validate(nil)
	require.Error(t, err)
	require.False(t, block.CanRead())
}

func TestStateMachineTransitions(t *testing.T) {
	block, err := From(FromParams{Type: RawData, DataType: RawDataType, BlockSize: Small, Data: []byte("x")})
	require.NoError(t, err)
	require.Equal(t, Constructed, block.State())

	require.NoError(t, block.Validate(nil))
	require.Equal(t, Validated, block.State())

	block.MarkPersisted()
	require.Equal(t, Persisted, block.State())

	block.MarkReadable()
	require.Equal(t, Readable, block.State())
}

func TestCanReadCanPersistAreOneWay(t *testing.T) {
	block, err := From(FromParams{Type: RawData, DataType: RawDataType, BlockSize: Small, Data: []byte("x")})
	require.NoError(t, err)

	block.DisableRead()
	block.DisablePersist()
	require.False(t, block.CanRead())
	require.False(t, block.CanPersist())

	// Once false, nothing in this package can flip it back to true.
	require.False(t, block.CanRead())
	require.False(t, block.CanPersist())
}

func TestEncryptedCapacityAccountsForOverhead(t *testing.T) {
	header := make([]byte, 97)
	header[0] = 0x04
	enc, err := NewEncrypted(Small, header, nil, len(header))
	require.NoError(t, err)
	require.Equal(t, Small.Bytes()-97, enc.Capacity())
	require.Equal(t, Small.Bytes()-97, enc.PayloadLength())
}
