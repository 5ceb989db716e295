package cmd

import "fmt"

type inspectCommand struct {
	Vault string `long:"vault" description:"hex-encoded vault address"`
}

func (c *inspectCommand) Execute(args []string) error {
	ctx, _, err := loadContext()
	if err != nil {
		return err
	}

	vaultAddr, err := parseAddress(c.Vault)
	if err != nil {
		return fmt.Errorf("--vault: %w", err)
	}

	view, err := ctx.Inspect(vaultAddr)
	if err != nil {
		return err
	}

	fmt.Printf("vault:      %s\n", view.Address)
	fmt.Printf("authority:  %s\n", view.Authority)
	fmt.Printf("version:    %d\n", view.Version)
	fmt.Printf("network_id: %d\n", view.NetworkID)
	fmt.Printf("threshold:  %d of %d\n", view.MThreshold, len(view.Signers))
	for _, fp := range view.Signers {
		fmt.Printf("  signer: %s\n", fp)
	}
	for _, asset := range view.Whitelist {
		fmt.Printf("  whitelisted: %s\n", asset)
	}
	return nil
}
