package blockmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JessicaMulein/BrightChain/internal/ecies"
)

func TestExtendedCBLEncodeDecodeRoundTrip(t *testing.T) {
	_, priv, err := ecies.GenerateKeyPair()
	require.NoError(t, err)
	keyHash := []byte("a stand-in 32-byte public key hash")

	addresses := sampleAddresses(4)
	ext, err := NewExtendedCBL(Medium, addresses, 8192, 3, nil, priv, keyHash, "report.pdf", "application/pdf")
	require.NoError(t, err)

	decoded, err := DecodeExtendedCBL(ext.Block)
	require.NoError(t, err)
	require.Equal(t, "report.pdf", decoded.FileName)
	require.Equal(t, "application/pdf", decoded.MimeType)
	require.Equal(t, addresses, decoded.Addresses())
	require.NoError(t, decoded.VerifyFileNameMAC(keyHash))
}

func TestExtendedCBLDetectsCosmeticFieldTamper(t *testing.T) {
	_, priv, err := ecies.GenerateKeyPair()
	require.NoError(t, err)
	keyHash := []byte("another 32-byte-ish public key hash")

	ext, err := NewExtendedCBL(Medium, sampleAddresses(2), 1, 3, nil, priv, keyHash, "a.txt", "text/plain")
	require.NoError(t, err)

	decoded, err := DecodeExtendedCBL(ext.Block)
	require.NoError(t, err)
	decoded.FileName = "b.txt"
	require.Error(t, decoded.VerifyFileNameMAC(keyHash))
}

func TestExtendedCBLRejectsOverlongCosmeticFields(t *testing.T) {
	huge := make([]byte, 256)
	for i := range huge {
		huge[i] = 'a'
	}
	_, err := NewExtendedCBL(Medium, sampleAddresses(1), 1, 3, nil, nil, nil, string(huge), "text/plain")
	require.ErrorIs(t, err, ErrCosmeticFieldTooLong)
}
