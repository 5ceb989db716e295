package cmd

import (
	"fmt"
	"strings"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/vault"
)

type rotateValidatorsCommand struct {
	Caller    string   `long:"caller" description:"hex-encoded caller address; must be the vault authority"`
	Vault     string   `long:"vault" description:"hex-encoded vault address"`
	RequestID uint64   `long:"request-id" description:"request id, bound into the admin nonce ledger"`
	Signers   string   `long:"signers" description:"comma-separated hex-encoded 20-byte validator fingerprints for the new set"`
	Threshold uint8    `long:"threshold" default:"1" description:"new signature threshold m"`
	Expiry    int64    `long:"expiry" description:"unix seconds the ticket is valid until; defaults to one hour from now"`
	Sig       []string `long:"sig" description:"65-byte hex signature (R||S||recovery-id), one per current signer; repeatable"`
}

func (c *rotateValidatorsCommand) Execute(args []string) error {
	ctx, st, err := loadContext()
	if err != nil {
		return err
	}

	caller, err := parseAddress(c.Caller)
	if err != nil {
		return fmt.Errorf("--caller: %w", err)
	}
	vaultAddr, err := parseAddress(c.Vault)
	if err != nil {
		return fmt.Errorf("--vault: %w", err)
	}

	var newSigners []ids.Fingerprint
	for _, raw := range strings.Split(c.Signers, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		fp, err := parseFingerprint(raw)
		if err != nil {
			return fmt.Errorf("--signers: %w", err)
		}
		newSigners = append(newSigners, fp)
	}

	expiry := c.Expiry
	if expiry == 0 {
		expiry = defaultExpiry()
	}

	ticket := &vault.RotateValidatorsTicket{
		RequestID:  c.RequestID,
		Vault:      vaultAddr,
		Signers:    newSigners,
		MThreshold: c.Threshold,
		Expiry:     expiry,
		NetworkID:  opts.NetworkID,
	}

	sigs := make([]vault.Signature, 0, len(c.Sig))
	for _, raw := range c.Sig {
		sig, err := parseSignature(raw)
		if err != nil {
			return fmt.Errorf("--sig: %w", err)
		}
		sigs = append(sigs, sig)
	}

	if err := ctx.RotateValidators(caller, ticket, sigs); err != nil {
		return err
	}
	if err := saveState(st); err != nil {
		return err
	}
	fmt.Printf("rotate ok: request_id=%d new_threshold=%d signers=%d\n", c.RequestID, c.Threshold, len(newSigners))
	return nil
}
