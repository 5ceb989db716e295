package vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strike-io/strike-core/ids"
)

type fakeLedger struct {
	native map[ids.Address]uint64
	tokens map[ids.Address]*TokenAccount
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		native: make(map[ids.Address]uint64),
		tokens: make(map[ids.Address]*TokenAccount),
	}
}

func (f *fakeLedger) GetNativeBalance(addr ids.Address) uint64 { return f.native[addr] }
func (f *fakeLedger) SetNativeBalance(addr ids.Address, amount uint64) {
	f.native[addr] = amount
}
func (f *fakeLedger) GetTokenAccount(addr ids.Address) (*TokenAccount, bool) {
	acc, ok := f.tokens[addr]
	return acc, ok
}

func TestDispatchHappyPathWithdraw(t *testing.T) {
	require := require.New(t)

	ledger := newFakeLedger()
	treasury, recipient := addrFrom(1), addrFrom(2)
	ledger.native[treasury] = 50

	err := Dispatch(ledger, ledger, DirectionOut, treasury, recipient, 0,
		[]AssetAmount{{Asset: ids.NativeCurrency(), Amount: 0 + 5}}, nil)
	require.NoError(err)
	require.EqualValues(45, ledger.native[treasury])
	require.EqualValues(5, ledger.native[recipient])
}

func TestDispatchMultiAssetAtomicOrder(t *testing.T) {
	require := require.New(t)

	ledger := newFakeLedger()
	treasury, recipient := addrFrom(1), addrFrom(2)
	ledger.native[treasury] = 100

	amounts := []AssetAmount{
		{Asset: ids.NativeCurrency(), Amount: 10},
		{Asset: ids.NativeCurrency(), Amount: 20},
	}
	require.NoError(Dispatch(ledger, ledger, DirectionOut, treasury, recipient, 0, amounts, nil))
	require.EqualValues(70, ledger.native[treasury])
	require.EqualValues(30, ledger.native[recipient])
}

func TestDispatchRejectsEmptyList(t *testing.T) {
	require := require.New(t)
	ledger := newFakeLedger()

	err := Dispatch(ledger, ledger, DirectionOut, addrFrom(1), addrFrom(2), 0, nil, nil)
	require.ErrorIs(err, ErrNoWithdrawalsProvided)

	err = Dispatch(ledger, ledger, DirectionIn, addrFrom(1), addrFrom(2), 0, nil, nil)
	require.ErrorIs(err, ErrNoDepositsProvided)
}

func TestDispatchRejectsZeroAmount(t *testing.T) {
	require := require.New(t)
	ledger := newFakeLedger()
	ledger.native[addrFrom(1)] = 100

	err := Dispatch(ledger, ledger, DirectionOut, addrFrom(1), addrFrom(2), 0,
		[]AssetAmount{{Asset: ids.NativeCurrency(), Amount: 0}}, nil)
	require.ErrorIs(err, ErrInvalidAmount)
}

func TestDispatchEnforcesRentExemptReserve(t *testing.T) {
	require := require.New(t)
	ledger := newFakeLedger()
	treasury := addrFrom(1)
	ledger.native[treasury] = 100

	err := Dispatch(ledger, ledger, DirectionOut, treasury, addrFrom(2), 50,
		[]AssetAmount{{Asset: ids.NativeCurrency(), Amount: 60}}, nil)
	require.ErrorIs(err, ErrInsufficientFunds)
	require.EqualValues(100, ledger.native[treasury], "failed dispatch must not mutate balances")
}

func TestDispatchAtomicFailureLeavesNoPartialEffect(t *testing.T) {
	require := require.New(t)
	ledger := newFakeLedger()
	treasury, recipient := addrFrom(1), addrFrom(2)
	ledger.native[treasury] = 30

	amounts := []AssetAmount{
		{Asset: ids.NativeCurrency(), Amount: 10},
		{Asset: ids.NativeCurrency(), Amount: 1000}, // fails
	}
	err := Dispatch(ledger, ledger, DirectionOut, treasury, recipient, 0, amounts, nil)
	require.ErrorIs(err, ErrInsufficientFunds)
	require.EqualValues(30, ledger.native[treasury])
	require.EqualValues(0, ledger.native[recipient])
}

func TestDispatchTokenTransferRequiresAccounts(t *testing.T) {
	require := require.New(t)
	ledger := newFakeLedger()

	mint := addrFrom(9)
	amounts := []AssetAmount{{Asset: ids.Token(mint), Amount: 5}}

	err := Dispatch(ledger, ledger, DirectionOut, addrFrom(1), addrFrom(2), 0, amounts, nil)
	require.ErrorIs(err, ErrTokenAccountNotFound)
}

func TestDispatchTokenTransferHappyPath(t *testing.T) {
	require := require.New(t)
	ledger := newFakeLedger()

	mint := addrFrom(9)
	vaultTokenAddr, recipientTokenAddr := addrFrom(10), addrFrom(11)
	ledger.tokens[vaultTokenAddr] = &TokenAccount{Address: vaultTokenAddr, Mint: mint, Balance: 100}
	ledger.tokens[recipientTokenAddr] = &TokenAccount{Address: recipientTokenAddr, Mint: mint, Balance: 0}

	amounts := []AssetAmount{{Asset: ids.Token(mint), Amount: 40}}
	refs := []*TokenAccountRef{{VaultOwned: vaultTokenAddr, Counterparty: recipientTokenAddr}}

	require.NoError(Dispatch(ledger, ledger, DirectionOut, addrFrom(1), addrFrom(2), 0, amounts, refs))
	require.EqualValues(60, ledger.tokens[vaultTokenAddr].Balance)
	require.EqualValues(40, ledger.tokens[recipientTokenAddr].Balance)
}
