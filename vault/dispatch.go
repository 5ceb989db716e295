package vault

import "github.com/strike-io/strike-core/ids"

// Direction distinguishes a deposit (into the treasury/vault token
// accounts) from a withdrawal (out of them), since both share the same
// validation and sequencing logic.
type Direction uint8

const (
	DirectionIn Direction = iota
	DirectionOut
)

// NativeLedger is the balance surface the dispatcher needs for native
// transfers. store.Store satisfies it structurally.
type NativeLedger interface {
	GetNativeBalance(addr ids.Address) uint64
	SetNativeBalance(addr ids.Address, amount uint64)
}

// TokenLedger is the balance surface the dispatcher needs for token
// transfers.
type TokenLedger interface {
	GetTokenAccount(addr ids.Address) (*TokenAccount, bool)
}

// TokenAccountRef names the two trailing token accounts a caller must
// supply whenever a ticket moves a token asset: the vault-owned account
// and the counterparty (recipient or depositor) account.
type TokenAccountRef struct {
	VaultOwned   ids.Address
	Counterparty ids.Address
}

// Dispatch executes every entry in amounts against treasury/counterparty in
// ticket order, atomically: every entry is validated — against a running
// balance that folds in the effect of earlier entries in the same batch —
// before any store mutation happens, so a failure partway through the list
// leaves no net state change. treasuryAddr is the vault's treasury for
// native transfers; counterpartyAddr is the recipient (withdrawals) or
// depositor (deposits) native address. tokenRefs supplies the trailing
// token accounts for each token-kind entry in amounts, indexed the same way
// (entries are ignored for native-kind amounts).
func Dispatch(
	ledger NativeLedger,
	tokens TokenLedger,
	dir Direction,
	treasuryAddr ids.Address,
	counterpartyAddr ids.Address,
	rentExemptMinimum uint64,
	amounts []AssetAmount,
	tokenRefs []*TokenAccountRef,
) error {
	if len(amounts) == 0 {
		if dir == DirectionOut {
			return Wrap(ErrNoWithdrawalsProvided)
		}
		return Wrap(ErrNoDepositsProvided)
	}

	nativeBalances := map[ids.Address]uint64{
		treasuryAddr:     ledger.GetNativeBalance(treasuryAddr),
		counterpartyAddr: ledger.GetNativeBalance(counterpartyAddr),
	}
	tokenBalances := make(map[ids.Address]uint64)
	tokenAccounts := make(map[ids.Address]*TokenAccount)

	for i, a := range amounts {
		if a.Amount == 0 {
			return Wrap(ErrInvalidAmount)
		}

		if a.Asset.Kind == ids.AssetKindNative {
			if err := applyNative(nativeBalances, dir, treasuryAddr, counterpartyAddr, a.Amount, rentExemptMinimum); err != nil {
				return err
			}
			continue
		}

		var ref *TokenAccountRef
		if i < len(tokenRefs) {
			ref = tokenRefs[i]
		}
		if ref == nil {
			return Wrap(ErrTokenAccountNotFound)
		}

		if _, err := loadTokenAccount(tokens, tokenAccounts, tokenBalances, ref.VaultOwned, a.Asset.Mint); err != nil {
			return err
		}
		if _, err := loadTokenAccount(tokens, tokenAccounts, tokenBalances, ref.Counterparty, a.Asset.Mint); err != nil {
			return err
		}

		fromAddr, toAddr := ref.VaultOwned, ref.Counterparty
		if dir == DirectionIn {
			fromAddr, toAddr = ref.Counterparty, ref.VaultOwned
		}
		if tokenBalances[fromAddr] < a.Amount {
			return Wrap(ErrInsufficientFunds)
		}
		tokenBalances[fromAddr] -= a.Amount
		tokenBalances[toAddr] += a.Amount
	}

	// Every entry validated clean: commit.
	for addr, balance := range nativeBalances {
		ledger.SetNativeBalance(addr, balance)
	}
	for addr, balance := range tokenBalances {
		tokenAccounts[addr].Balance = balance
	}
	return nil
}

func applyNative(balances map[ids.Address]uint64, dir Direction, treasuryAddr, counterpartyAddr ids.Address, amount, rentExemptMinimum uint64) error {
	if dir == DirectionOut {
		if balances[treasuryAddr] < amount {
			return Wrap(ErrInsufficientFunds)
		}
		newTreasury := balances[treasuryAddr] - amount
		if newTreasury < rentExemptMinimum {
			return Wrap(ErrInsufficientFunds)
		}
		balances[treasuryAddr] = newTreasury
		balances[counterpartyAddr] += amount
		return nil
	}

	if balances[counterpartyAddr] < amount {
		return Wrap(ErrInsufficientFunds)
	}
	balances[counterpartyAddr] -= amount
	balances[treasuryAddr] += amount
	return nil
}

func loadTokenAccount(tokens TokenLedger, cache map[ids.Address]*TokenAccount, balances map[ids.Address]uint64, addr, mint ids.Address) (*TokenAccount, error) {
	if acc, ok := cache[addr]; ok {
		return acc, nil
	}
	acc, ok := tokens.GetTokenAccount(addr)
	if !ok || acc.Mint != mint {
		return nil, Wrap(ErrTokenAccountNotFound)
	}
	cache[addr] = acc
	balances[addr] = acc.Balance
	return acc, nil
}
