package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/vault"
)

func addrFromByte(b byte) ids.Address {
	var a ids.Address
	a[len(a)-1] = b
	return a
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	s := New()

	vaultAddr := addrFromByte(1)
	treasuryAddr := addrFromByte(2)
	tokenAddr := addrFromByte(3)
	nonceAddr := addrFromByte(4)
	recipientAddr := addrFromByte(5)

	v := &vault.Vault{
		Version:    1,
		Authority:  addrFromByte(9),
		MThreshold: 2,
		Signers:    []ids.Fingerprint{{0x01}, {0x02}, {0x03}},
		Address:    vaultAddr,
		NetworkID:  vault.NetworkDevnet,
		Seed:       "seed",
	}
	s.PutVault(v)
	s.PutTreasury(&vault.Treasury{Address: treasuryAddr, Balance: 1_000_000})
	s.GetOrCreateTokenAccount(tokenAddr, vaultAddr, addrFromByte(7))
	s.SetNativeBalance(recipientAddr, 42)
	require.True(t, s.ReserveNonce(nonceAddr))
	s.MarkNonceUsed(nonceAddr)

	data, err := s.MarshalJSON()
	require.NoError(t, err)

	loaded := New()
	require.NoError(t, loaded.LoadJSON(data))

	gotVault, ok := loaded.GetVault(vaultAddr)
	require.True(t, ok)
	require.Equal(t, v.MThreshold, gotVault.MThreshold)
	require.Equal(t, v.Signers, gotVault.Signers)
	require.Equal(t, v.NetworkID, gotVault.NetworkID)

	gotTreasury, ok := loaded.GetTreasury(treasuryAddr)
	require.True(t, ok)
	require.Equal(t, uint64(1_000_000), gotTreasury.Balance)

	_, ok = loaded.GetTokenAccount(tokenAddr)
	require.True(t, ok)

	require.Equal(t, uint64(42), loaded.GetNativeBalance(recipientAddr))
	require.True(t, loaded.IsNonceUsed(nonceAddr))
}

func TestLoadJSONEmptyDocumentKeepsFreshDefaults(t *testing.T) {
	s := New()
	require.NoError(t, s.LoadJSON([]byte(`{}`)))

	require.Empty(t, s.Vaults())
	require.Equal(t, uint64(0), s.GetNativeBalance(addrFromByte(1)))
	require.False(t, s.IsNonceUsed(addrFromByte(1)))
}

func TestSnapshotRestoreUndoesNativeTokenAndNonceChanges(t *testing.T) {
	s := New()

	nativeAddr := addrFromByte(1)
	tokenAddr := addrFromByte(2)
	existingNonce := addrFromByte(3)
	newNonce := addrFromByte(4)

	s.SetNativeBalance(nativeAddr, 100)
	acc, _ := s.GetOrCreateTokenAccount(tokenAddr, addrFromByte(5), addrFromByte(6))
	acc.Balance = 50
	require.True(t, s.ReserveNonce(existingNonce))

	snap := s.Snapshot()

	s.SetNativeBalance(nativeAddr, 0)
	acc.Balance = 0
	s.MarkNonceUsed(existingNonce)
	require.True(t, s.ReserveNonce(newNonce))
	s.MarkNonceUsed(newNonce)

	s.Restore(snap)

	require.Equal(t, uint64(100), s.GetNativeBalance(nativeAddr))
	gotAcc, ok := s.GetTokenAccount(tokenAddr)
	require.True(t, ok)
	require.Equal(t, uint64(50), gotAcc.Balance)
	require.False(t, s.IsNonceUsed(existingNonce))
	require.False(t, s.IsNonceUsed(newNonce))
}

func TestVaultsReturnsAllRecords(t *testing.T) {
	s := New()
	s.PutVault(&vault.Vault{Address: addrFromByte(1)})
	s.PutVault(&vault.Vault{Address: addrFromByte(2)})

	require.Len(t, s.Vaults(), 2)
}
