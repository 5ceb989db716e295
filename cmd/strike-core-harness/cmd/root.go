// Package cmd implements the strike-core-harness command tree: a local,
// in-memory simulator for the custody engine. Each subcommand loads the
// account store from --state, runs one instruction against it, and
// persists the result, so a sequence of invocations exercises the engine
// the way a series of transactions would against a real deployment.
package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"
	"go.uber.org/zap/zapcore"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/internal/config"
	"github.com/strike-io/strike-core/internal/logging"
	"github.com/strike-io/strike-core/vault/executor"
	"github.com/strike-io/strike-core/vault/store"
)

// options holds every flag shared across subcommands, plus one field per
// subcommand. go-flags fills it from the command line, then dispatches to
// whichever subcommand's Execute method the arguments selected.
type options struct {
	State           string `long:"state" description:"path to the persisted account store"`
	ProgramID       string `long:"program-id" description:"hex-encoded 32-byte program id all addresses derive from"`
	NetworkID       uint64 `long:"network-id" description:"network id tickets must be bound to (101 mainnet, 102 devnet, 103 testnet)"`
	LogLevel        string `long:"log-level" description:"log level: debug, info, warn, error"`
	TreasuryReserve uint64 `long:"treasury-reserve" description:"minimum native balance the treasury must retain after a withdrawal"`

	InitVault        initVaultCommand        `command:"init-vault" description:"Initialize a new vault and fund its treasury"`
	Deposit          depositCommand          `command:"deposit" description:"Deposit native currency or a whitelisted token into a vault"`
	Withdraw         withdrawCommand         `command:"withdraw" description:"Withdraw funds under the vault's m-of-n threshold"`
	AdminWithdraw    adminWithdrawCommand    `command:"admin-withdraw" description:"Withdraw funds under unanimous signer approval"`
	RotateValidators rotateValidatorsCommand `command:"rotate-validators" description:"Atomically replace a vault's signer set and threshold"`
	Inspect          inspectCommand          `command:"inspect" description:"Print a read-only snapshot of a vault's configuration"`
}

// opts is populated by Parse before any subcommand's Execute runs, giving
// every command struct access to the shared flags the way a package-level
// config object would.
var opts = options{
	State:           "strike-core-harness.state.json",
	NetworkID:       config.DefaultNetworkID,
	LogLevel:        config.DefaultLogLevel,
	TreasuryReserve: config.DefaultTreasuryReserve,
}

// Parse builds the flag parser, registers every subcommand, and runs
// whichever one the arguments select.
func Parse(args []string) error {
	opts.ProgramID = "01" + strings.Repeat("00", ids.AddressLength-1)

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "strike-core-harness"
	parser.LongDescription = "Local simulator for the threshold custody engine"

	_, err := parser.ParseArgs(args)
	return err
}

// loadContext opens the persisted store at --state (an empty store if the
// file does not yet exist) and wires it into an executor.Context bound to
// --program-id and the resolved logging/network configuration.
func loadContext() (*executor.Context, *store.Store, error) {
	level, err := zapcore.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}
	log, err := logging.New(level)
	if err != nil {
		return nil, nil, fmt.Errorf("building logger: %w", err)
	}

	programIDBytes, err := hex.DecodeString(opts.ProgramID)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing --program-id: %w", err)
	}
	programID, err := ids.AddressFromSlice(programIDBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing --program-id: %w", err)
	}

	st := store.New()
	if data, err := os.ReadFile(opts.State); err == nil {
		if err := st.LoadJSON(data); err != nil {
			return nil, nil, fmt.Errorf("loading state from %s: %w", opts.State, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("reading state from %s: %w", opts.State, err)
	}

	ctx := executor.New(programID, st, executor.SystemClock{}, log)
	return ctx, st, nil
}

// saveState persists st back to --state after a command mutates it.
func saveState(st *store.Store) error {
	data, err := st.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(opts.State, data, 0o600); err != nil {
		return fmt.Errorf("writing state to %s: %w", opts.State, err)
	}
	return nil
}

func parseAddress(s string) (ids.Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ids.Address{}, fmt.Errorf("expected hex-encoded 32-byte address: %w", err)
	}
	return ids.AddressFromSlice(raw)
}

// defaultExpiry is used whenever a ticket-building subcommand is not given
// an explicit --expiry.
func defaultExpiry() int64 {
	return time.Now().Add(time.Hour).Unix()
}

func parseFingerprint(s string) (ids.Fingerprint, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ids.Fingerprint{}, fmt.Errorf("expected hex-encoded 20-byte fingerprint: %w", err)
	}
	return ids.FingerprintFromSlice(raw)
}
