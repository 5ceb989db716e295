// Package store provides the in-memory account store the engine runs
// against. It stands in for the host runtime's account database: vault
// records, treasury/token balances, and nonce records all live here,
// guarded by a single RWMutex, the same way a validator set keeps its
// subnet-to-validator-set map safe for concurrent reads.
package store

import (
	"encoding/json"
	"sync"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/vault"
)

// Store is the full set of persistent accounts the engine reads and
// mutates. All methods are safe for concurrent use; the engine itself
// never calls them concurrently for a single vault (the host serializes
// transactions touching the same accounts), but the harness CLI and tests
// may share a Store across goroutines.
type Store struct {
	mu sync.RWMutex

	vaults    map[ids.Address]*vault.Vault
	treasury  map[ids.Address]*vault.Treasury
	tokens    map[ids.Address]*vault.TokenAccount
	nonces    map[ids.Address]*vault.NonceRecord
	native    map[ids.Address]uint64 // native balances of every account, treasuries included
}

func New() *Store {
	return &Store{
		vaults:   make(map[ids.Address]*vault.Vault),
		treasury: make(map[ids.Address]*vault.Treasury),
		tokens:   make(map[ids.Address]*vault.TokenAccount),
		nonces:   make(map[ids.Address]*vault.NonceRecord),
		native:   make(map[ids.Address]uint64),
	}
}

func (s *Store) GetVault(addr ids.Address) (*vault.Vault, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vaults[addr]
	return v, ok
}

func (s *Store) PutVault(v *vault.Vault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vaults[v.Address] = v
}

func (s *Store) GetTreasury(addr ids.Address) (*vault.Treasury, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tr, ok := s.treasury[addr]
	return tr, ok
}

func (s *Store) PutTreasury(tr *vault.Treasury) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.treasury[tr.Address] = tr
}

// GetOrCreateTokenAccount returns the token account at addr, creating an
// empty one owned by owner/mint if it does not yet exist. created reports
// whether a new account was allocated.
func (s *Store) GetOrCreateTokenAccount(addr, owner, mint ids.Address) (account *vault.TokenAccount, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc, ok := s.tokens[addr]; ok {
		return acc, false
	}
	acc := &vault.TokenAccount{Address: addr, Owner: owner, Mint: mint}
	s.tokens[addr] = acc
	return acc, true
}

func (s *Store) GetTokenAccount(addr ids.Address) (*vault.TokenAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.tokens[addr]
	return acc, ok
}

func (s *Store) GetNativeBalance(addr ids.Address) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.native[addr]
}

func (s *Store) SetNativeBalance(addr ids.Address, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.native[addr] = amount
}

// ReserveNonce creates the nonce record at addr with Used=false. It returns
// false without mutating the store if the record already exists, modeling
// the host's account-creation collision.
func (s *Store) ReserveNonce(addr ids.Address) (reserved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nonces[addr]; exists {
		return false
	}
	s.nonces[addr] = &vault.NonceRecord{Used: false}
	return true
}

// MarkNonceUsed flips the record at addr to Used=true. The record must
// already have been reserved.
func (s *Store) MarkNonceUsed(addr ids.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.nonces[addr]; ok {
		rec.Used = true
	}
}

func (s *Store) IsNonceUsed(addr ids.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.nonces[addr]
	return ok && rec.Used
}

// Vaults returns every vault record currently held, for CLI inspection and
// state persistence. The harness has exactly one vault per deployment in
// practice, but the store itself places no limit on this.
func (s *Store) Vaults() []*vault.Vault {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*vault.Vault, 0, len(s.vaults))
	for _, v := range s.vaults {
		out = append(out, v)
	}
	return out
}

// persistedState is the on-disk shape the CLI harness saves between
// invocations, since the harness itself holds no long-running process the
// way a real validator host would.
type persistedState struct {
	Vaults   []*vault.Vault                       `json:"vaults"`
	Treasury map[ids.Address]*vault.Treasury      `json:"treasury"`
	Tokens   map[ids.Address]*vault.TokenAccount  `json:"tokens"`
	Nonces   map[ids.Address]*vault.NonceRecord   `json:"nonces"`
	Native   map[ids.Address]uint64               `json:"native"`
}

// MarshalJSON renders the full store as a single JSON document.
func (s *Store) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vaults := make([]*vault.Vault, 0, len(s.vaults))
	for _, v := range s.vaults {
		vaults = append(vaults, v)
	}
	return json.Marshal(persistedState{
		Vaults:   vaults,
		Treasury: s.treasury,
		Tokens:   s.tokens,
		Nonces:   s.nonces,
		Native:   s.native,
	})
}

// LoadJSON replaces the store's contents with a document produced by
// MarshalJSON.
func (s *Store) LoadJSON(data []byte) error {
	var p persistedState
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.vaults = make(map[ids.Address]*vault.Vault, len(p.Vaults))
	for _, v := range p.Vaults {
		s.vaults[v.Address] = v
	}
	if p.Treasury != nil {
		s.treasury = p.Treasury
	}
	if p.Tokens != nil {
		s.tokens = p.Tokens
	}
	if p.Nonces != nil {
		s.nonces = p.Nonces
	}
	if p.Native != nil {
		s.native = p.Native
	}
	return nil
}

// Snapshot captures a deep copy of the mutable account state a bulk
// instruction can touch (native balances, token balances, nonce records).
// Bulk handlers use it to emulate the host runtime's transactional
// rollback: a restore undoes every sub-ticket processed so far the instant
// one of them fails.
type Snapshot struct {
	native  map[ids.Address]uint64
	tokens  map[ids.Address]uint64 // token account address -> balance
	nonces  map[ids.Address]bool   // nonce address -> existed
	used    map[ids.Address]bool   // nonce address -> used, for existing records
}

func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		native: make(map[ids.Address]uint64, len(s.native)),
		tokens: make(map[ids.Address]uint64, len(s.tokens)),
		nonces: make(map[ids.Address]bool, len(s.nonces)),
		used:   make(map[ids.Address]bool, len(s.nonces)),
	}
	for addr, bal := range s.native {
		snap.native[addr] = bal
	}
	for addr, acc := range s.tokens {
		snap.tokens[addr] = acc.Balance
	}
	for addr, rec := range s.nonces {
		snap.nonces[addr] = true
		snap.used[addr] = rec.Used
	}
	return snap
}

// Restore reverts the store to exactly the state snap captured, discarding
// any nonce records created and any balance changes made since.
func (s *Store) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for addr := range s.native {
		if _, ok := snap.native[addr]; !ok {
			delete(s.native, addr)
		}
	}
	for addr, bal := range snap.native {
		s.native[addr] = bal
	}
	for addr, bal := range snap.tokens {
		if acc, ok := s.tokens[addr]; ok {
			acc.Balance = bal
		}
	}
	for addr := range s.nonces {
		if !snap.nonces[addr] {
			delete(s.nonces, addr)
		}
	}
	for addr, used := range snap.used {
		if rec, ok := s.nonces[addr]; ok {
			rec.Used = used
		}
	}
}
