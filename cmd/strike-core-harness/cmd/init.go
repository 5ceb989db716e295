package cmd

import (
	"fmt"
	"strings"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/vault"
)

type initVaultCommand struct {
	Seed      string `long:"seed" description:"vault seed string (1-32 bytes)"`
	Threshold uint8  `long:"threshold" default:"1" description:"signature threshold m"`
	Signers   string `long:"signers" description:"comma-separated hex-encoded 20-byte validator fingerprints"`
	Authority string `long:"authority" description:"hex-encoded 32-byte authority address"`
	Fund      uint64 `long:"fund" description:"initial native balance to credit the treasury with"`
}

func (c *initVaultCommand) Execute(args []string) error {
	ctx, st, err := loadContext()
	if err != nil {
		return err
	}

	authority, err := parseAddress(c.Authority)
	if err != nil {
		return fmt.Errorf("--authority: %w", err)
	}

	var signers []ids.Fingerprint
	for _, raw := range strings.Split(c.Signers, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		fp, err := parseFingerprint(raw)
		if err != nil {
			return fmt.Errorf("--signers: %w", err)
		}
		signers = append(signers, fp)
	}

	vlt, err := vault.Initialize(c.Seed, opts.NetworkID, c.Threshold, signers, authority)
	if err != nil {
		return err
	}
	vlt.Address = vault.VaultAddress(ctx.ProgramID, vlt.Seed)
	st.PutVault(vlt)

	treasuryAddr := vault.TreasuryAddress(ctx.ProgramID, vlt.Address)
	st.SetNativeBalance(treasuryAddr, c.Fund)

	if err := saveState(st); err != nil {
		return err
	}

	fmt.Printf("vault:    %s\n", vlt.Address)
	fmt.Printf("treasury: %s (funded %d)\n", treasuryAddr, c.Fund)
	return nil
}
