package vault

import (
	"encoding/binary"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/pkg/crypto/secp256k1"
)

// pdaDomain separates program-derived addresses from ticket digests in the
// keccak256 preimage space; it is never exposed to clients.
const pdaDomain = "strike-pda-v1"

// Derive deterministically maps (programID, seeds...) to an account
// address. It is a pure function: the same inputs always produce the same
// address, and different seed orderings or contents produce different
// addresses.
func Derive(programID ids.Address, seeds ...[]byte) ids.Address {
	preimage := make([][]byte, 0, len(seeds)+2)
	preimage = append(preimage, []byte(pdaDomain), programID[:])
	preimage = append(preimage, seeds...)
	digest := secp256k1.Keccak256(preimage...)

	var addr ids.Address
	copy(addr[:], digest[:])
	return addr
}

// VaultAddress derives a vault's address from its seed string.
func VaultAddress(programID ids.Address, vaultSeed string) ids.Address {
	return Derive(programID, []byte("vault"), []byte(vaultSeed))
}

// TreasuryAddress derives a vault's treasury address.
func TreasuryAddress(programID, vaultAddr ids.Address) ids.Address {
	return Derive(programID, []byte("treasury"), vaultAddr[:])
}

// NonceAddress derives the address of a namespaced nonce record for
// (vaultAddr, requestID).
func NonceAddress(programID ids.Address, namespace NonceNamespace, vaultAddr ids.Address, requestID uint64) ids.Address {
	var reqIDBytes [8]byte
	binary.LittleEndian.PutUint64(reqIDBytes[:], requestID)
	return Derive(programID, []byte(namespace), vaultAddr[:], reqIDBytes[:])
}
