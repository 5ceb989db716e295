package vault

import "github.com/strike-io/strike-core/ids"

// NonceStore is the storage surface the nonce ledger needs. store.Store
// satisfies it structurally; the vault package never imports store
// directly to keep the dependency direction store -> vault one-way.
type NonceStore interface {
	ReserveNonce(addr ids.Address) bool
	MarkNonceUsed(addr ids.Address)
	IsNonceUsed(addr ids.Address) bool
}

// ReserveNonce derives the namespaced nonce address for (vaultAddr,
// requestID) and reserves it. It fails with ErrNonceAlreadyUsed if a record
// already exists there — either a genuine replay, or (within a bulk
// instruction) an intra-batch collision the caller should have already
// rejected via CheckNoDuplicateRequestIDs.
func ReserveNonce(ns NonceStore, programID ids.Address, namespace NonceNamespace, vaultAddr ids.Address, requestID uint64) (ids.Address, error) {
	addr := NonceAddress(programID, namespace, vaultAddr, requestID)
	if !ns.ReserveNonce(addr) {
		return addr, Wrap(ErrNonceAlreadyUsed)
	}
	return addr, nil
}

// MarkNonceUsed flips a previously reserved nonce record to used. Handlers
// call this only after every other precondition of the instruction has
// succeeded, so a failure anywhere upstream never leaves a record marked
// used without an executed transfer.
func MarkNonceUsed(ns NonceStore, nonceAddr ids.Address) {
	ns.MarkNonceUsed(nonceAddr)
}

// CheckNoDuplicateRequestIDs rejects a bulk instruction outright if two of
// its sub-tickets share a request id, before any signature, nonce, or
// transfer work happens for any of them.
func CheckNoDuplicateRequestIDs(requestIDs []uint64) error {
	seen := make(map[uint64]bool, len(requestIDs))
	for _, id := range requestIDs {
		if seen[id] {
			return Wrap(ErrDuplicateRequestId)
		}
		seen[id] = true
	}
	return nil
}
