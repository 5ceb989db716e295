package executor

import (
	"go.uber.org/zap"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/vault"
)

// Deposit is the user-initiated, unsigned entry point. request_id
// uniqueness is not enforced: deposits do not consume a nonce.
func (c *Context) Deposit(caller, vaultAddr ids.Address, requestID uint64, deposits []vault.AssetAmount, tokenRefs []*vault.TokenAccountRef) error {
	const name = "deposit"

	v, err := c.loadVault(vaultAddr)
	if err != nil {
		c.reject(name, requestID, err)
		return err
	}
	if caller == v.Authority {
		return c.reject(name, requestID, vault.Wrap(vault.ErrAdminDepositShouldBeSigned))
	}
	for _, d := range deposits {
		if !v.IsWhitelisted(d.Asset) {
			return c.reject(name, requestID, vault.Wrap(vault.ErrAssetNotWhitelisted))
		}
	}

	treasuryAddr := vault.TreasuryAddress(c.ProgramID, vaultAddr)
	if err := vault.Dispatch(c.Store, c.Store, vault.DirectionIn, treasuryAddr, caller, 0, deposits, tokenRefs); err != nil {
		return c.reject(name, requestID, err)
	}

	vault.LogDeposit(c.Log, requestID)
	return nil
}

// withdrawParams bundles the per-call inputs common to Withdraw and
// AdminWithdraw; the two differ only in namespace and effective threshold.
type withdrawParams struct {
	ticket            *vault.WithdrawalTicket
	sigs              []vault.Signature
	recipientAddr     ids.Address
	tokenRefs         []*vault.TokenAccountRef
	rentExemptMinimum uint64
	namespace         vault.NonceNamespace
	effectiveM        func(v *vault.Vault) int
	eventName         string
}

func (c *Context) withdraw(p withdrawParams) error {
	v, err := c.loadVault(p.ticket.Vault)
	if err != nil {
		return c.reject(p.eventName, p.ticket.RequestID, err)
	}
	if err := c.checkTicketBinding(v, p.ticket.Vault, p.ticket.NetworkID, p.ticket.Expiry); err != nil {
		return c.reject(p.eventName, p.ticket.RequestID, err)
	}
	if p.recipientAddr != p.ticket.Recipient {
		return c.reject(p.eventName, p.ticket.RequestID, vault.Wrap(vault.ErrInvalidRecipient))
	}

	digest := p.ticket.Digest()
	if _, err := vault.ValidateSignatures(digest, p.sigs, v.Signers, p.effectiveM(v)); err != nil {
		return c.reject(p.eventName, p.ticket.RequestID, err)
	}

	nonceAddr, err := vault.ReserveNonce(c.Store, c.ProgramID, p.namespace, v.Address, p.ticket.RequestID)
	if err != nil {
		return c.reject(p.eventName, p.ticket.RequestID, err)
	}

	treasuryAddr := vault.TreasuryAddress(c.ProgramID, v.Address)
	if err := vault.Dispatch(c.Store, c.Store, vault.DirectionOut, treasuryAddr, p.recipientAddr, p.rentExemptMinimum, p.ticket.Withdrawals, p.tokenRefs); err != nil {
		return c.reject(p.eventName, p.ticket.RequestID, err)
	}

	vault.MarkNonceUsed(c.Store, nonceAddr)
	vault.LogWithdraw(c.Log, p.ticket.RequestID)
	return nil
}

// Withdraw requires m-of-n signatures from the active signer set.
func (c *Context) Withdraw(ticket *vault.WithdrawalTicket, sigs []vault.Signature, recipientAddr ids.Address, tokenRefs []*vault.TokenAccountRef, rentExemptMinimum uint64) error {
	return c.withdraw(withdrawParams{
		ticket:            ticket,
		sigs:              sigs,
		recipientAddr:     recipientAddr,
		tokenRefs:         tokenRefs,
		rentExemptMinimum: rentExemptMinimum,
		namespace:         vault.NonceNamespaceUser,
		effectiveM:        func(v *vault.Vault) int { return int(v.MThreshold) },
		eventName:         "withdraw",
	})
}

// AdminWithdraw requires every current signer to have signed: unanimity,
// not the configured threshold.
func (c *Context) AdminWithdraw(ticket *vault.WithdrawalTicket, sigs []vault.Signature, recipientAddr ids.Address, tokenRefs []*vault.TokenAccountRef, rentExemptMinimum uint64) error {
	return c.withdraw(withdrawParams{
		ticket:            ticket,
		sigs:              sigs,
		recipientAddr:     recipientAddr,
		tokenRefs:         tokenRefs,
		rentExemptMinimum: rentExemptMinimum,
		namespace:         vault.NonceNamespaceAdmin,
		effectiveM:        func(v *vault.Vault) int { return len(v.Signers) },
		eventName:         "admin_withdraw",
	})
}

// AdminDeposit moves funds into the treasury under a weak ≥1-valid-signer
// witness requirement. The ticket's User field is overwritten with caller
// before the digest used for signature validation is computed, so
// signatures always bind the caller that actually submitted the ticket.
func (c *Context) AdminDeposit(caller ids.Address, ticket *vault.AdminDepositTicket, sigs []vault.Signature, tokenRefs []*vault.TokenAccountRef) error {
	const name = "admin_deposit"

	v, err := c.loadVault(ticket.Vault)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}
	if err := c.checkTicketBinding(v, ticket.Vault, ticket.NetworkID, ticket.Expiry); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	ticket.User = caller
	digest := ticket.Digest()
	if _, err := vault.ValidateSignatures(digest, sigs, v.Signers, 1); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	nonceAddr, err := vault.ReserveNonce(c.Store, c.ProgramID, vault.NonceNamespaceAdmin, v.Address, ticket.RequestID)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	treasuryAddr := vault.TreasuryAddress(c.ProgramID, v.Address)
	if err := vault.Dispatch(c.Store, c.Store, vault.DirectionIn, treasuryAddr, caller, 0, ticket.Deposits, tokenRefs); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	vault.MarkNonceUsed(c.Store, nonceAddr)
	vault.LogDeposit(c.Log, ticket.RequestID)
	return nil
}

// AddAsset whitelists an asset for deposit.
func (c *Context) AddAsset(caller ids.Address, ticket *vault.AddAssetTicket, sigs []vault.Signature) error {
	const name = "add_asset"

	v, err := c.loadVault(ticket.Vault)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}
	if caller != v.Authority {
		return c.reject(name, ticket.RequestID, vault.Wrap(vault.ErrUnauthorizedUser))
	}
	if err := c.checkTicketBinding(v, ticket.Vault, ticket.NetworkID, ticket.Expiry); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	digest := ticket.Digest()
	if _, err := vault.ValidateSignatures(digest, sigs, v.Signers, int(v.MThreshold)); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	nonceAddr, err := vault.ReserveNonce(c.Store, c.ProgramID, vault.NonceNamespaceAdmin, v.Address, ticket.RequestID)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	vault.AddAsset(v, ticket.Asset)
	c.Store.PutVault(v)
	vault.MarkNonceUsed(c.Store, nonceAddr)
	vault.LogAssetAdded(c.Log, ticket.Asset)
	return nil
}

// RemoveAsset delists an asset; funds already held remain withdrawable.
func (c *Context) RemoveAsset(caller ids.Address, ticket *vault.RemoveAssetTicket, sigs []vault.Signature) error {
	const name = "remove_asset"

	v, err := c.loadVault(ticket.Vault)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}
	if caller != v.Authority {
		return c.reject(name, ticket.RequestID, vault.Wrap(vault.ErrUnauthorizedUser))
	}
	if err := c.checkTicketBinding(v, ticket.Vault, ticket.NetworkID, ticket.Expiry); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	digest := ticket.Digest()
	if _, err := vault.ValidateSignatures(digest, sigs, v.Signers, int(v.MThreshold)); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	nonceAddr, err := vault.ReserveNonce(c.Store, c.ProgramID, vault.NonceNamespaceAdmin, v.Address, ticket.RequestID)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	found := vault.RemoveAsset(v, ticket.Asset)
	if !found {
		c.Log.Info("remove_asset: asset not present, treating as success", zap.Uint64("request_id", ticket.RequestID))
	}
	c.Store.PutVault(v)
	vault.MarkNonceUsed(c.Store, nonceAddr)
	vault.LogAssetRemoved(c.Log, ticket.Asset)
	return nil
}

// RotateValidators atomically replaces the signer set and threshold. It is
// validated against the *current* signer set and threshold — the rotation
// a ticket requests cannot bootstrap itself.
func (c *Context) RotateValidators(caller ids.Address, ticket *vault.RotateValidatorsTicket, sigs []vault.Signature) error {
	const name = "rotate_validators"

	v, err := c.loadVault(ticket.Vault)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}
	if caller != v.Authority {
		return c.reject(name, ticket.RequestID, vault.Wrap(vault.ErrUnauthorizedUser))
	}
	if err := c.checkTicketBinding(v, ticket.Vault, ticket.NetworkID, ticket.Expiry); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	digest := ticket.Digest()
	if _, err := vault.ValidateSignatures(digest, sigs, v.Signers, int(v.MThreshold)); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	nonceAddr, err := vault.ReserveNonce(c.Store, c.ProgramID, vault.NonceNamespaceAdmin, v.Address, ticket.RequestID)
	if err != nil {
		return c.reject(name, ticket.RequestID, err)
	}

	oldSigners := vault.SignerFingerprints(v)
	if err := vault.RotateValidators(v, ticket.Signers, ticket.MThreshold); err != nil {
		return c.reject(name, ticket.RequestID, err)
	}
	c.Store.PutVault(v)
	vault.MarkNonceUsed(c.Store, nonceAddr)

	removed := vault.RemovedSigners(oldSigners, v.Signers)
	if len(removed) > 0 {
		c.Log.Info("validators_revoked", zap.Int("count", len(removed)))
	}
	vault.LogValidatorsRotated(c.Log, v.Signers, v.MThreshold)
	return nil
}

// BulkWithdrawItem is one sub-ticket of a bulk withdrawal instruction.
type BulkWithdrawItem struct {
	Ticket        *vault.WithdrawalTicket
	Sigs          []vault.Signature
	RecipientAddr ids.Address
	TokenRefs     []*vault.TokenAccountRef
}

func (c *Context) bulkWithdraw(items []BulkWithdrawItem, rentExemptMinimum uint64, namespace vault.NonceNamespace, effectiveM func(*vault.Vault) int, eventName string) error {
	requestIDs := make([]uint64, len(items))
	for i, item := range items {
		requestIDs[i] = item.Ticket.RequestID
	}
	if err := vault.CheckNoDuplicateRequestIDs(requestIDs); err != nil {
		c.reject(eventName, 0, err)
		return err
	}

	snap := c.Store.Snapshot()
	for _, item := range items {
		if err := c.withdraw(withdrawParams{
			ticket:            item.Ticket,
			sigs:              item.Sigs,
			recipientAddr:     item.RecipientAddr,
			tokenRefs:         item.TokenRefs,
			rentExemptMinimum: rentExemptMinimum,
			namespace:         namespace,
			effectiveM:        effectiveM,
			eventName:         eventName,
		}); err != nil {
			c.Store.Restore(snap)
			return err
		}
	}
	return nil
}

// BulkWithdraw processes a batch of threshold-signed withdrawals as a
// single all-or-nothing instruction: the first sub-ticket to fail rolls
// back every transfer the batch already made, including across distinct
// request ids and recipients.
func (c *Context) BulkWithdraw(items []BulkWithdrawItem, rentExemptMinimum uint64) error {
	return c.bulkWithdraw(items, rentExemptMinimum, vault.NonceNamespaceUser,
		func(v *vault.Vault) int { return int(v.MThreshold) }, "bulk_withdraw")
}

// BulkAdminWithdraw is BulkWithdraw under the admin namespace and
// unanimous-signer threshold.
func (c *Context) BulkAdminWithdraw(items []BulkWithdrawItem, rentExemptMinimum uint64) error {
	return c.bulkWithdraw(items, rentExemptMinimum, vault.NonceNamespaceAdmin,
		func(v *vault.Vault) int { return len(v.Signers) }, "bulk_admin_withdraw")
}

// CreateVaultTokenAccount creates a vault-owned token account for mint.
// Idempotent: an existing account is a benign success.
func (c *Context) CreateVaultTokenAccount(caller, vaultAddr, mint ids.Address) error {
	const name = "create_vault_token_account"

	v, err := c.loadVault(vaultAddr)
	if err != nil {
		return c.reject(name, 0, err)
	}
	if caller != v.Authority {
		return c.reject(name, 0, vault.Wrap(vault.ErrUnauthorizedUser))
	}

	addr := vault.Derive(c.ProgramID, []byte("token"), vaultAddr[:], mint[:])
	_, created := c.Store.GetOrCreateTokenAccount(addr, vaultAddr, mint)
	c.Log.Info(name, zap.Stringer("account", addr), zap.Bool("created", created))
	return nil
}

// Inspect returns a read-only snapshot of vault configuration; it mutates
// nothing and requires no signatures.
type VaultView struct {
	Address    ids.Address
	Authority  ids.Address
	MThreshold uint8
	Signers    []ids.Fingerprint
	Whitelist  []ids.AssetKey
	NetworkID  uint64
	Version    uint8
}

func (c *Context) Inspect(vaultAddr ids.Address) (*VaultView, error) {
	v, err := c.loadVault(vaultAddr)
	if err != nil {
		return nil, err
	}
	return &VaultView{
		Address:    v.Address,
		Authority:  v.Authority,
		MThreshold: v.MThreshold,
		Signers:    vault.SignerFingerprints(v),
		Whitelist:  vault.WhitelistSnapshot(v),
		NetworkID:  v.NetworkID,
		Version:    v.Version,
	}, nil
}

func (c *Context) reject(instruction string, requestID uint64, err error) error {
	if fault, ok := err.(*vault.Fault); ok {
		vault.LogRejected(c.Log, instruction, requestID, fault)
	}
	return err
}
