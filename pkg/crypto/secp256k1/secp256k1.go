// Package secp256k1 provides the two cryptographic primitives the custody
// engine is built on: keccak256 hashing of ticket preimages, and secp256k1
// ECDSA signature recovery of a ticket digest to a 20-byte signer
// fingerprint.
package secp256k1

import (
	"errors"

	secp256k1ec "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/strike-io/strike-core/ids"
)

const (
	// RSLength is the size of the concatenated r||s portion of a signature.
	RSLength = 64

	uncompressedPubKeyLength = 65 // 0x04 prefix + 64 bytes of X||Y
	recoverableSigLength     = 65 // r(32) || s(32) || v(1), as consumed by Ecrecover
)

var (
	ErrMalformedSignature   = errors.New("malformed signature")
	ErrInvalidRecoveryID    = errors.New("invalid recovery id")
)

// Keccak256 hashes the concatenation of data using keccak256, the hash
// function every ticket digest and fingerprint is built from.
func Keccak256(data ...[]byte) [32]byte {
	var out [32]byte
	copy(out[:], crypto.Keccak256(data...))
	return out
}

// Fingerprint returns the low 20 bytes of keccak256 over an uncompressed,
// unprefixed 64-byte secp256k1 public key.
func Fingerprint(pubkey64 []byte) ids.Fingerprint {
	digest := Keccak256(pubkey64)
	var fp ids.Fingerprint
	copy(fp[:], digest[12:32])
	return fp
}

// NormalizeRecoveryID subtracts 27 from legacy Ethereum-style recovery ids
// (27/28), leaving 0/1 values untouched.
func NormalizeRecoveryID(v uint8) (uint8, bool) {
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return 0, false
	}
	return v, true
}

// Recover attempts to recover the signer fingerprint from a ticket digest
// and a signature. It returns an error for any malformed input; callers in
// the signature validator are expected to treat that as "skip this
// signature", not abort the instruction.
func Recover(digest [32]byte, rs [RSLength]byte, recoveryID uint8) (ids.Fingerprint, error) {
	var zero ids.Fingerprint

	normalized, ok := NormalizeRecoveryID(recoveryID)
	if !ok {
		return zero, ErrInvalidRecoveryID
	}

	var s secp256k1ec.ModNScalar
	if overflow := s.SetByteSlice(rs[32:64]); overflow {
		return zero, ErrMalformedSignature
	}
	// Reject non-canonical (high-S) signatures outright rather than letting
	// them recover to a key: the ticket was signed once, and any relayer
	// able to flip S without the private key would otherwise be able to
	// mint a second, distinct-looking valid signature for the same digest.
	if s.IsOverHalfOrder() {
		return zero, ErrMalformedSignature
	}

	sig := make([]byte, recoverableSigLength)
	copy(sig[0:32], rs[0:32])
	copy(sig[32:64], rs[32:64])
	sig[64] = normalized

	pub, err := crypto.Ecrecover(digest[:], sig)
	if err != nil {
		return zero, ErrMalformedSignature
	}
	// pub is 65 bytes: 0x04 prefix followed by 64 bytes of X||Y.
	return Fingerprint(pub[1:]), nil
}
