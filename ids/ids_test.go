package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressFromSlice(t *testing.T) {
	require := require.New(t)

	_, err := AddressFromSlice(make([]byte, 31))
	require.ErrorIs(err, errWrongAddressLength)

	raw := make([]byte, AddressLength)
	raw[0] = 0xAB
	addr, err := AddressFromSlice(raw)
	require.NoError(err)
	require.Equal(byte(0xAB), addr[0])
	require.NotEmpty(addr.String())
}

func TestFingerprintFromSlice(t *testing.T) {
	require := require.New(t)

	_, err := FingerprintFromSlice(make([]byte, 19))
	require.ErrorIs(err, errWrongFingerprintLength)

	raw := make([]byte, FingerprintLength)
	fp, err := FingerprintFromSlice(raw)
	require.NoError(err)
	require.Equal(EmptyFingerprint, fp)
}

func TestAddressTextRoundTrip(t *testing.T) {
	require := require.New(t)

	var addr Address
	addr[0], addr[31] = 0x01, 0xFF

	text, err := addr.MarshalText()
	require.NoError(err)

	var decoded Address
	require.NoError(decoded.UnmarshalText(text))
	require.Equal(addr, decoded)
}

func TestAssetKeyEqual(t *testing.T) {
	require := require.New(t)

	require.True(NativeCurrency().Equal(NativeCurrency()))

	var mintA, mintB Address
	mintA[0] = 1
	mintB[0] = 2

	require.True(Token(mintA).Equal(Token(mintA)))
	require.False(Token(mintA).Equal(Token(mintB)))
	require.False(Token(mintA).Equal(NativeCurrency()))
}
