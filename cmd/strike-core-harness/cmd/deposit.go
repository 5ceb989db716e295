package cmd

import (
	"fmt"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/vault"
)

type depositCommand struct {
	Vault     string `long:"vault" description:"hex-encoded vault address"`
	Caller    string `long:"caller" description:"hex-encoded depositor address"`
	RequestID uint64 `long:"request-id" description:"request id (informational for deposits, not replay-checked)"`
	Mint      string `long:"mint" description:"hex-encoded token mint; omit for native currency"`
	Amount    uint64 `long:"amount" description:"amount to deposit"`
}

func (c *depositCommand) Execute(args []string) error {
	ctx, st, err := loadContext()
	if err != nil {
		return err
	}

	vaultAddr, err := parseAddress(c.Vault)
	if err != nil {
		return fmt.Errorf("--vault: %w", err)
	}
	caller, err := parseAddress(c.Caller)
	if err != nil {
		return fmt.Errorf("--caller: %w", err)
	}

	asset := ids.NativeCurrency()
	if c.Mint != "" {
		mint, err := parseAddress(c.Mint)
		if err != nil {
			return fmt.Errorf("--mint: %w", err)
		}
		asset = ids.Token(mint)
	}

	err = ctx.Deposit(caller, vaultAddr, c.RequestID,
		[]vault.AssetAmount{{Asset: asset, Amount: c.Amount}}, nil)
	if err != nil {
		return err
	}

	if err := saveState(st); err != nil {
		return err
	}
	fmt.Printf("deposit ok: request_id=%d\n", c.RequestID)
	return nil
}
