package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strike-io/strike-core/ids"
)

type fakeNonceStore struct {
	records map[ids.Address]bool // addr -> used
}

func newFakeNonceStore() *fakeNonceStore {
	return &fakeNonceStore{records: make(map[ids.Address]bool)}
}

func (f *fakeNonceStore) ReserveNonce(addr ids.Address) bool {
	if _, exists := f.records[addr]; exists {
		return false
	}
	f.records[addr] = false
	return true
}

func (f *fakeNonceStore) MarkNonceUsed(addr ids.Address) {
	f.records[addr] = true
}

func (f *fakeNonceStore) IsNonceUsed(addr ids.Address) bool {
	return f.records[addr]
}

func TestReserveNonceThenReplayRejected(t *testing.T) {
	require := require.New(t)

	store := newFakeNonceStore()
	programID := addrFrom(1)
	vaultAddr := addrFrom(2)

	addr, err := ReserveNonce(store, programID, NonceNamespaceUser, vaultAddr, 1000)
	require.NoError(err)
	MarkNonceUsed(store, addr)
	require.True(store.IsNonceUsed(addr))

	_, err = ReserveNonce(store, programID, NonceNamespaceUser, vaultAddr, 1000)
	require.ErrorIs(err, ErrNonceAlreadyUsed)
}

func TestReserveNonceNamespacesIndependent(t *testing.T) {
	require := require.New(t)

	store := newFakeNonceStore()
	programID := addrFrom(1)
	vaultAddr := addrFrom(2)

	_, err := ReserveNonce(store, programID, NonceNamespaceUser, vaultAddr, 1000)
	require.NoError(err)

	_, err = ReserveNonce(store, programID, NonceNamespaceAdmin, vaultAddr, 1000)
	require.NoError(err, "admin namespace must not collide with user namespace")
}

func TestCheckNoDuplicateRequestIDs(t *testing.T) {
	require := require.New(t)

	require.NoError(CheckNoDuplicateRequestIDs([]uint64{1, 2, 3}))

	err := CheckNoDuplicateRequestIDs([]uint64{1, 2, 1})
	require.ErrorIs(err, ErrDuplicateRequestId)
}
