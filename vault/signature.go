package vault

import (
	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/pkg/crypto/secp256k1"
)

// Signature is a single validator's authorization over a ticket digest.
type Signature struct {
	RS         [secp256k1.RSLength]byte
	RecoveryID uint8
}

// ValidateSignatures recovers a fingerprint from every signature in sigs,
// keeps only those that belong to signers, deduplicates by fingerprint
// preserving first occurrence, and requires at least m distinct valid
// fingerprints. Malformed or non-member signatures are dropped silently;
// only running out of valid signatures is an error.
func ValidateSignatures(digest [32]byte, sigs []Signature, signers []ids.Fingerprint, m int) ([]ids.Fingerprint, error) {
	if len(sigs) == 0 {
		return nil, Wrap(ErrNoSignaturesProvided)
	}
	if len(sigs) < m {
		return nil, Wrap(ErrInsufficientSignatures)
	}

	memberSet := make(map[ids.Fingerprint]bool, len(signers))
	for _, s := range signers {
		memberSet[s] = true
	}

	seen := make(map[ids.Fingerprint]bool, len(sigs))
	valid := make([]ids.Fingerprint, 0, len(sigs))

	for _, sig := range sigs {
		fp, err := secp256k1.Recover(digest, sig.RS, sig.RecoveryID)
		if err != nil {
			continue // malformed signature: skip, don't abort
		}
		if !memberSet[fp] {
			continue // not a member of the active signer set
		}
		if seen[fp] {
			continue // duplicate signature for an already-counted signer
		}
		seen[fp] = true
		valid = append(valid, fp)
	}

	if len(valid) < m {
		return nil, Wrap(ErrInsufficientValidSignatures)
	}
	return valid, nil
}
