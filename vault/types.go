package vault

import "github.com/strike-io/strike-core/ids"

// MaxSigners bounds the active validator set, keeping signature validation
// and ticket codec cost bounded.
const MaxSigners = 10

// Network identifiers tickets are bound to.
const (
	NetworkMainnet uint64 = 101
	NetworkDevnet  uint64 = 102
	NetworkTestnet uint64 = 103
)

// AssetAmount pairs an asset with a quantity; it is the unit the Transfer
// Dispatcher and every ticket payload operate on.
type AssetAmount struct {
	Asset  ids.AssetKey
	Amount uint64
}

// Vault is the engine's single persistent configuration record: signer set,
// threshold, authority, and whitelist. One Vault exists per deployment
// instance and is mutated only through the threshold-authorized admin
// paths in executor.
type Vault struct {
	Version            uint8
	Authority          ids.Address
	MThreshold         uint8
	Signers            []ids.Fingerprint
	WhitelistedAssets  []ids.AssetKey
	NetworkID          uint64
	Bump               uint8
	Address            ids.Address
	Seed               string
}

// HasSigner reports whether fp is a member of the active validator set.
func (v *Vault) HasSigner(fp ids.Fingerprint) bool {
	for _, s := range v.Signers {
		if s == fp {
			return true
		}
	}
	return false
}

// IsWhitelisted reports whether asset is accepted for deposit.
func (v *Vault) IsWhitelisted(asset ids.AssetKey) bool {
	for _, a := range v.WhitelistedAssets {
		if a.Equal(asset) {
			return true
		}
	}
	return false
}

// Treasury is the vault-owned, data-less account holding native balance.
type Treasury struct {
	Address ids.Address
	Bump    uint8
	Balance uint64
}

// TokenAccount is a vault- or recipient-owned balance of a single fungible
// token mint.
type TokenAccount struct {
	Address ids.Address
	Owner   ids.Address
	Mint    ids.Address
	Balance uint64
}

// NonceNamespace separates the user and admin request-id spaces so they can
// never collide.
type NonceNamespace string

const (
	NonceNamespaceUser  NonceNamespace = "nonce"
	NonceNamespaceAdmin NonceNamespace = "admin_nonce"
)

// NonceRecord is the one-shot replay-protection marker for a (vault,
// request_id) pair within a namespace.
type NonceRecord struct {
	Used bool
}
