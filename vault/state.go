package vault

import (
	"bytes"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/strike-io/strike-core/ids"
)

const (
	minVaultSeedLength = 1
	maxVaultSeedLength = 32
)

// validateSignerSet enforces the threshold/signer-count/duplicate rules
// shared by Initialize and RotateValidators.
func validateSignerSet(signers []ids.Fingerprint, threshold uint8) error {
	if len(signers) < 1 || len(signers) > MaxSigners {
		return Wrap(ErrInvalidSignersCount)
	}
	if threshold < 1 || int(threshold) > len(signers) {
		return Wrap(ErrInvalidThreshold)
	}

	seen := make(map[ids.Fingerprint]bool, len(signers))
	for _, s := range signers {
		if seen[s] {
			return Wrap(ErrDuplicateSigner)
		}
		seen[s] = true
	}
	return nil
}

// Initialize builds a new Vault record. It does not allocate the treasury
// or pick an address; callers derive those separately (see address.go) and
// attach them before persisting.
func Initialize(vaultSeed string, networkID uint64, threshold uint8, signers []ids.Fingerprint, authority ids.Address) (*Vault, error) {
	if len(vaultSeed) < minVaultSeedLength || len(vaultSeed) > maxVaultSeedLength {
		return nil, Wrap(ErrInvalidSignersCount)
	}
	if err := validateSignerSet(signers, threshold); err != nil {
		return nil, err
	}

	signersCopy := make([]ids.Fingerprint, len(signers))
	copy(signersCopy, signers)

	return &Vault{
		Version:           1,
		Authority:         authority,
		MThreshold:        threshold,
		Signers:           signersCopy,
		WhitelistedAssets: nil,
		NetworkID:         networkID,
		Seed:              vaultSeed,
	}, nil
}

// AddAsset appends asset to the whitelist if it is not already present.
// Idempotent: re-adding an already-whitelisted asset is a no-op, not an
// error.
func AddAsset(v *Vault, asset ids.AssetKey) {
	if v.IsWhitelisted(asset) {
		return
	}
	v.WhitelistedAssets = append(v.WhitelistedAssets, asset)
}

// RemoveAsset removes asset from the whitelist if present. Removing an
// asset that was never whitelisted succeeds silently: funds already held
// in a delisted asset remain withdrawable, only new deposits are blocked.
func RemoveAsset(v *Vault, asset ids.AssetKey) (found bool) {
	for i, a := range v.WhitelistedAssets {
		if a.Equal(asset) {
			v.WhitelistedAssets = append(v.WhitelistedAssets[:i], v.WhitelistedAssets[i+1:]...)
			return true
		}
	}
	return false
}

// RotateValidators atomically replaces the signer set and threshold.
// Tickets signed under the previous set that have not yet executed become
// unusable the instant this returns, because subsequent signature
// validation runs against the new v.Signers.
func RotateValidators(v *Vault, newSigners []ids.Fingerprint, newThreshold uint8) error {
	if err := validateSignerSet(newSigners, newThreshold); err != nil {
		return err
	}

	signersCopy := make([]ids.Fingerprint, len(newSigners))
	copy(signersCopy, newSigners)

	v.Signers = signersCopy
	v.MThreshold = newThreshold
	return nil
}

// RequireVersion gates an instruction behind a minimum schema version,
// supporting additive migrations without a whole-state rewrite.
func RequireVersion(v *Vault, min uint8) error {
	if v.Version < min {
		return Wrap(ErrRequiresMigration)
	}
	return nil
}

// SignerFingerprints returns a copy of v.Signers for logging and inspection.
func SignerFingerprints(v *Vault) []ids.Fingerprint {
	out := make([]ids.Fingerprint, len(v.Signers))
	copy(out, v.Signers)
	return out
}

// WhitelistSnapshot returns a copy of the whitelist in a deterministic
// order, used by the read-only Inspect operation.
func WhitelistSnapshot(v *Vault) []ids.AssetKey {
	out := make([]ids.AssetKey, len(v.WhitelistedAssets))
	copy(out, v.WhitelistedAssets)
	return out
}

// RemovedSigners returns, in a stable sorted order, the fingerprints present
// in old but absent from new — the set a rotation just revoked. Handlers
// log this so an off-chain indexer can flag tickets signed by a now-revoked
// validator without replaying the whole signer history.
func RemovedSigners(old, new []ids.Fingerprint) []ids.Fingerprint {
	newSet := make(map[ids.Fingerprint]bool, len(new))
	for _, fp := range new {
		newSet[fp] = true
	}

	removedSet := make(map[ids.Fingerprint]bool, len(old))
	for _, fp := range old {
		if !newSet[fp] {
			removedSet[fp] = true
		}
	}

	removed := maps.Keys(removedSet)
	sort.Slice(removed, func(i, j int) bool {
		return bytes.Compare(removed[i][:], removed[j][:]) < 0
	})
	return removed
}
