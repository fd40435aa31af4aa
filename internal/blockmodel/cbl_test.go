package blockmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JessicaMulein/BrightChain/internal/ecies"
)

func sampleAddresses(n int) []ChecksumBuffer {
	out := make([]ChecksumBuffer, n)
	for i := range out {
		out[i] = CalculateChecksum([]byte{byte(i)})
	}
	return out
}

func TestCBLEncodeDecodeRoundTrip(t *testing.T) {
	pub, priv, err := ecies.GenerateKeyPair()
	require.NoError(t, err)

	addresses := sampleAddresses(10)
	cbl, err := NewCBL(Medium, addresses, 40960, 3, nil, priv)
	require.NoError(t, err)

	decoded, err := DecodeCBL(cbl.Block)
	require.NoError(t, err)
	require.Equal(t, addresses, decoded.Addresses())
	require.Equal(t, uint64(40960), decoded.OriginalDataLength)
	require.Equal(t, uint8(3), decoded.TupleSize)
	require.True(t, decoded.VerifySignature(pub))
}

func TestCBLSignatureFailsUnderWrongKey(t *testing.T) {
	_, priv, err := ecies.GenerateKeyPair()
	require.NoError(t, err)
	otherPub, _, err := ecies.GenerateKeyPair()
	require.NoError(t, err)

	cbl, err := NewCBL(Medium, sampleAddresses(3), 1024, 3, nil, priv)
	require.NoError(t, err)
	require.False(t, cbl.VerifySignature(otherPub))
}

func TestCBLAddressCapacityRejectsOversizedList(t *testing.T) {
	capacity := CBLAddressCapacity(Message)
	_, err := NewCBL(Message, sampleAddresses(capacity+1), 0, 3, nil, nil)
	require.ErrorIs(t, err, ErrTooManyAddresses)
}

func TestCBLAddressCapacityMath(t *testing.T) {
	capacity := CBLAddressCapacity(Small)
	require.Equal(t, (Small.Bytes()-cblHeaderSize)/ChecksumWidth, capacity)
}
