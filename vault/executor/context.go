// Package executor wires the ticket codec, signature validator, nonce
// ledger, vault state manager, and transfer dispatcher together into the
// engine's externally-callable instruction handlers.
package executor

import (
	"time"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/internal/logging"
	"github.com/strike-io/strike-core/vault"
	"github.com/strike-io/strike-core/vault/store"
)

// Clock returns the host-provided wall clock a ticket's expiry is compared
// against. A fixed clock makes expiry deterministic in tests.
type Clock interface {
	Now() int64
}

// SystemClock reads real wall-clock time, in the same unit as Ticket.Expiry
// (seconds since epoch).
type SystemClock struct{}

func (SystemClock) Now() int64 { return time.Now().Unix() }

// Context is the shared execution environment every handler receives: the
// deploying program's address (used for all PDA derivation), the account
// store, a clock, and a logger.
type Context struct {
	ProgramID ids.Address
	Store     *store.Store
	Clock     Clock
	Log       logging.Logger
}

func New(programID ids.Address, st *store.Store, clock Clock, log logging.Logger) *Context {
	return &Context{ProgramID: programID, Store: st, Clock: clock, Log: log}
}

// loadVault fetches the vault and fails with ErrInvalidVault if it does not
// exist at the address the ticket names.
func (c *Context) loadVault(vaultAddr ids.Address) (*vault.Vault, error) {
	v, ok := c.Store.GetVault(vaultAddr)
	if !ok {
		return nil, vault.Wrap(vault.ErrInvalidVault)
	}
	return v, nil
}

// minTicketVersion is the schema floor every threshold-signed instruction
// requires today. Raising it for a future field is a one-line change here.
const minTicketVersion = 1

// checkTicketBinding enforces the preconditions shared by every
// threshold-signed instruction: the vault is not pending a migration, the
// ticket names this vault, the deployment's network, and has not expired.
func (c *Context) checkTicketBinding(v *vault.Vault, ticketVault ids.Address, networkID uint64, expiry int64) error {
	if err := vault.RequireVersion(v, minTicketVersion); err != nil {
		return err
	}
	if ticketVault != v.Address {
		return vault.Wrap(vault.ErrInvalidVault)
	}
	if networkID != v.NetworkID {
		return vault.Wrap(vault.ErrInvalidNetwork)
	}
	if expiry < c.Clock.Now() {
		return vault.Wrap(vault.ErrTicketExpired)
	}
	return nil
}
