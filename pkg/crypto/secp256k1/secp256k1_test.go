package secp256k1

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestRecoverRoundTrip(t *testing.T) {
	require := require.New(t)

	key, err := crypto.GenerateKey()
	require.NoError(err)

	digest := Keccak256([]byte("strike-protocol-v1-Withdrawal"), []byte("payload"))

	sig, err := crypto.Sign(digest[:], key)
	require.NoError(err)
	require.Len(sig, 65)

	var rs [RSLength]byte
	copy(rs[:], sig[:64])
	recoveryID := sig[64]

	fp, err := Recover(digest, rs, recoveryID)
	require.NoError(err)

	pubBytes := crypto.FromECDSAPub(&key.PublicKey)
	wantFp := Fingerprint(pubBytes[1:])
	require.Equal(wantFp, fp)

	// 27/28 form normalizes to the same result.
	fp27, err := Recover(digest, rs, recoveryID+27)
	require.NoError(err)
	require.Equal(fp, fp27)
}

func TestRecoverInvalidRecoveryID(t *testing.T) {
	require := require.New(t)

	var digest [32]byte
	var rs [RSLength]byte
	_, err := Recover(digest, rs, 5)
	require.ErrorIs(err, ErrInvalidRecoveryID)
}

func TestRecoverDeterministic(t *testing.T) {
	require := require.New(t)

	key, err := crypto.GenerateKey()
	require.NoError(err)

	digest := Keccak256([]byte("deterministic-check"))
	sig, err := crypto.Sign(digest[:], key)
	require.NoError(err)

	var rs [RSLength]byte
	copy(rs[:], sig[:64])

	fp1, err := Recover(digest, rs, sig[64])
	require.NoError(err)
	fp2, err := Recover(digest, rs, sig[64])
	require.NoError(err)
	require.Equal(fp1, fp2)
}
