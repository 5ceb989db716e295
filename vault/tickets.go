package vault

import "github.com/strike-io/strike-core/ids"

// Domain separators. Each ticket variant is hashed with a distinct
// separator so a signature over one variant can never be replayed as a
// signature over another.
const (
	domainWithdrawal       = "strike-protocol-v1-Withdrawal"
	domainAdminDeposit     = "strike-protocol-v1-AdminDeposit"
	domainAddAsset         = "strike-protocol-v1-AddAsset"
	domainRemoveAsset      = "strike-protocol-v1-RemoveAsset"
	domainRotateValidators = "strike-protocol-v1-rotate"
)

// WithdrawalTicket authorizes moving a list of AssetAmounts out of a vault
// to a single recipient.
type WithdrawalTicket struct {
	RequestID   uint64
	Vault       ids.Address
	Recipient   ids.Address
	Withdrawals []AssetAmount
	Expiry      int64
	NetworkID   uint64
}

// AdminDepositTicket authorizes moving a list of AssetAmounts into a vault
// on behalf of a specific user. The User field is forcibly overwritten with
// the transaction caller's identity before the digest used for signature
// validation is computed, so a signed ticket can never be replayed to
// credit a different user than the one who actually submitted it.
type AdminDepositTicket struct {
	RequestID uint64
	Vault     ids.Address
	User      ids.Address
	Deposits  []AssetAmount
	Expiry    int64
	NetworkID uint64
}

// AddAssetTicket and RemoveAssetTicket authorize a single whitelist
// mutation.
type AddAssetTicket struct {
	RequestID uint64
	Vault     ids.Address
	Expiry    int64
	NetworkID uint64
	Asset     ids.AssetKey
}

type RemoveAssetTicket struct {
	RequestID uint64
	Vault     ids.Address
	Expiry    int64
	NetworkID uint64
	Asset     ids.AssetKey
}

// RotateValidatorsTicket authorizes atomically replacing the signer set and
// threshold.
type RotateValidatorsTicket struct {
	RequestID  uint64
	Vault      ids.Address
	Signers    []ids.Fingerprint
	MThreshold uint8
	Expiry     int64
	NetworkID  uint64
}

// Digest returns the keccak256 digest validators sign over.
func (t *WithdrawalTicket) Digest() [32]byte {
	return digestWithdrawal(t)
}

func (t *AdminDepositTicket) Digest() [32]byte {
	return digestAdminDeposit(t)
}

func (t *AddAssetTicket) Digest() [32]byte {
	return digestAddAsset(t)
}

func (t *RemoveAssetTicket) Digest() [32]byte {
	return digestRemoveAsset(t)
}

func (t *RotateValidatorsTicket) Digest() [32]byte {
	return digestRotateValidators(t)
}
