package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/strike-io/strike-core/cmd/strike-core-harness/cmd"
)

func main() {
	if err := cmd.Parse(os.Args[1:]); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "strike-core-harness: %v\n", err)
		os.Exit(1)
	}
}
