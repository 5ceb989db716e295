package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strike-io/strike-core/ids"
)

func fpFrom(b byte) ids.Fingerprint {
	var f ids.Fingerprint
	f[0] = b
	return f
}

func TestInitializeValidatesSignerCount(t *testing.T) {
	require := require.New(t)

	_, err := Initialize("seed", NetworkDevnet, 1, nil, addrFrom(1))
	require.ErrorIs(err, ErrInvalidSignersCount)

	tooMany := make([]ids.Fingerprint, MaxSigners+1)
	for i := range tooMany {
		tooMany[i] = fpFrom(byte(i))
	}
	_, err = Initialize("seed", NetworkDevnet, 1, tooMany, addrFrom(1))
	require.ErrorIs(err, ErrInvalidSignersCount)
}

func TestInitializeValidatesThreshold(t *testing.T) {
	require := require.New(t)

	signers := []ids.Fingerprint{fpFrom(1), fpFrom(2), fpFrom(3)}

	_, err := Initialize("seed", NetworkDevnet, 0, signers, addrFrom(1))
	require.ErrorIs(err, ErrInvalidThreshold)

	_, err = Initialize("seed", NetworkDevnet, 4, signers, addrFrom(1))
	require.ErrorIs(err, ErrInvalidThreshold)

	v, err := Initialize("seed", NetworkDevnet, 2, signers, addrFrom(1))
	require.NoError(err)
	require.Equal(uint8(2), v.MThreshold)
	require.Empty(v.WhitelistedAssets)
}

func TestInitializeRejectsDuplicateSigner(t *testing.T) {
	require := require.New(t)

	signers := []ids.Fingerprint{fpFrom(1), fpFrom(1)}
	_, err := Initialize("seed", NetworkDevnet, 1, signers, addrFrom(1))
	require.ErrorIs(err, ErrDuplicateSigner)
}

func TestAddAssetIdempotent(t *testing.T) {
	require := require.New(t)

	v, err := Initialize("seed", NetworkDevnet, 1, []ids.Fingerprint{fpFrom(1)}, addrFrom(1))
	require.NoError(err)

	AddAsset(v, ids.NativeCurrency())
	AddAsset(v, ids.NativeCurrency())
	require.Len(v.WhitelistedAssets, 1)
}

func TestRemoveAssetAbsentSucceeds(t *testing.T) {
	require := require.New(t)

	v, err := Initialize("seed", NetworkDevnet, 1, []ids.Fingerprint{fpFrom(1)}, addrFrom(1))
	require.NoError(err)

	found := RemoveAsset(v, ids.NativeCurrency())
	require.False(found)
}

func TestRotateValidatorsReplacesAtomically(t *testing.T) {
	require := require.New(t)

	v, err := Initialize("seed", NetworkDevnet, 2, []ids.Fingerprint{fpFrom(1), fpFrom(2), fpFrom(3)}, addrFrom(1))
	require.NoError(err)

	newSigners := []ids.Fingerprint{fpFrom(4), fpFrom(5)}
	require.NoError(RotateValidators(v, newSigners, 2))
	require.Equal(newSigners, v.Signers)
	require.False(v.HasSigner(fpFrom(1)))
}

func TestRotateValidatorsRejectsInvalidConfig(t *testing.T) {
	require := require.New(t)

	v, err := Initialize("seed", NetworkDevnet, 2, []ids.Fingerprint{fpFrom(1), fpFrom(2)}, addrFrom(1))
	require.NoError(err)

	err = RotateValidators(v, []ids.Fingerprint{fpFrom(3)}, 2)
	require.ErrorIs(err, ErrInvalidThreshold)
	// the vault must be untouched after a rejected rotation
	require.True(v.HasSigner(fpFrom(1)))
}

func TestRequireVersion(t *testing.T) {
	require := require.New(t)

	v := &Vault{Version: 1}
	require.NoError(RequireVersion(v, 1))
	require.ErrorIs(RequireVersion(v, 2), ErrRequiresMigration)
}

func TestRemovedSigners(t *testing.T) {
	require := require.New(t)

	old := []ids.Fingerprint{fpFrom(1), fpFrom(2), fpFrom(3)}
	newSet := []ids.Fingerprint{fpFrom(2), fpFrom(4)}

	removed := RemovedSigners(old, newSet)
	require.Equal([]ids.Fingerprint{fpFrom(1), fpFrom(3)}, removed)
}
