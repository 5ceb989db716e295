package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/pkg/crypto/secp256k1"
	"github.com/strike-io/strike-core/vault"
)

// parseSignature decodes a 65-byte hex string (32-byte R, 32-byte S, 1-byte
// recovery id) into a vault.Signature.
func parseSignature(s string) (vault.Signature, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return vault.Signature{}, fmt.Errorf("expected 65-byte hex signature: %w", err)
	}
	if len(raw) != secp256k1.RSLength+1 {
		return vault.Signature{}, fmt.Errorf("expected %d-byte signature, got %d", secp256k1.RSLength+1, len(raw))
	}
	var sig vault.Signature
	copy(sig.RS[:], raw[:secp256k1.RSLength])
	sig.RecoveryID = raw[secp256k1.RSLength]
	return sig, nil
}

// withdrawOptions is the flag set shared by withdraw and admin-withdraw; the
// two differ only in which threshold executor.Context method they call.
type withdrawOptions struct {
	Vault     string   `long:"vault" description:"hex-encoded vault address"`
	Recipient string   `long:"recipient" description:"hex-encoded recipient address"`
	RequestID uint64   `long:"request-id" description:"request id, bound into the nonce ledger"`
	Mint      string   `long:"mint" description:"hex-encoded token mint; omit for native currency"`
	Amount    uint64   `long:"amount" description:"amount to withdraw"`
	Expiry    int64    `long:"expiry" description:"unix seconds the ticket is valid until; defaults to one hour from now"`
	Sig       []string `long:"sig" description:"65-byte hex signature (R||S||recovery-id); repeatable"`
}

func (c *withdrawOptions) run(admin bool) error {
	ctx, st, err := loadContext()
	if err != nil {
		return err
	}

	vaultAddr, err := parseAddress(c.Vault)
	if err != nil {
		return fmt.Errorf("--vault: %w", err)
	}
	recipient, err := parseAddress(c.Recipient)
	if err != nil {
		return fmt.Errorf("--recipient: %w", err)
	}

	asset := ids.NativeCurrency()
	if c.Mint != "" {
		mint, err := parseAddress(c.Mint)
		if err != nil {
			return fmt.Errorf("--mint: %w", err)
		}
		asset = ids.Token(mint)
	}

	expiry := c.Expiry
	if expiry == 0 {
		expiry = defaultExpiry()
	}

	ticket := &vault.WithdrawalTicket{
		RequestID:   c.RequestID,
		Vault:       vaultAddr,
		Recipient:   recipient,
		Withdrawals: []vault.AssetAmount{{Asset: asset, Amount: c.Amount}},
		Expiry:      expiry,
		NetworkID:   opts.NetworkID,
	}

	sigs := make([]vault.Signature, 0, len(c.Sig))
	for _, raw := range c.Sig {
		sig, err := parseSignature(raw)
		if err != nil {
			return fmt.Errorf("--sig: %w", err)
		}
		sigs = append(sigs, sig)
	}

	if admin {
		err = ctx.AdminWithdraw(ticket, sigs, recipient, nil, opts.TreasuryReserve)
	} else {
		err = ctx.Withdraw(ticket, sigs, recipient, nil, opts.TreasuryReserve)
	}
	if err != nil {
		return err
	}

	if err := saveState(st); err != nil {
		return err
	}
	fmt.Printf("withdraw ok: request_id=%d recipient=%s\n", c.RequestID, recipient)
	return nil
}

type withdrawCommand struct {
	withdrawOptions
}

func (c *withdrawCommand) Execute(args []string) error {
	return c.run(false)
}

type adminWithdrawCommand struct {
	withdrawOptions
}

func (c *adminWithdrawCommand) Execute(args []string) error {
	return c.run(true)
}
