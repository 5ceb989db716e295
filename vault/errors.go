package vault

import "errors"

// Code is the stable ordinal form of a vault error. Clients and off-chain
// indexers key off Code, not the Go error value, so the ordinals below must
// never be reordered or reused once shipped.
type Code uint8

const (
	CodeInvalidSignersCount Code = iota + 1
	CodeInvalidThreshold
	CodeDuplicateSigner
	CodeInvalidAmount
	CodeNoDepositsProvided
	CodeNoWithdrawalsProvided
	CodeAssetNotWhitelisted
	CodeTokenAccountNotFound
	CodeInsufficientFunds
	CodeTicketExpired
	CodeInvalidVault
	CodeInvalidRecipient
	CodeInvalidNetwork
	CodeInsufficientSignatures
	CodeInsufficientValidSignatures
	CodeNonceAlreadyUsed
	CodeUnauthorizedUser
	CodeAdminDepositShouldBeSigned
	CodeDuplicateRequestId
	CodeRequiresMigration
	CodeNoSignaturesProvided
)

var (
	ErrInvalidSignersCount         = errors.New("invalid signers count")
	ErrInvalidThreshold            = errors.New("invalid threshold")
	ErrDuplicateSigner             = errors.New("duplicate signer")
	ErrInvalidAmount               = errors.New("invalid amount")
	ErrNoDepositsProvided          = errors.New("no deposits provided")
	ErrNoWithdrawalsProvided       = errors.New("no withdrawals provided")
	ErrAssetNotWhitelisted         = errors.New("asset not whitelisted")
	ErrTokenAccountNotFound        = errors.New("token account not found")
	ErrInsufficientFunds           = errors.New("insufficient funds")
	ErrTicketExpired               = errors.New("ticket expired")
	ErrInvalidVault                = errors.New("invalid vault")
	ErrInvalidRecipient            = errors.New("invalid recipient")
	ErrInvalidNetwork              = errors.New("invalid network")
	ErrNoSignaturesProvided        = errors.New("no signatures provided")
	ErrInsufficientSignatures      = errors.New("insufficient signatures")
	ErrInsufficientValidSignatures = errors.New("insufficient valid signatures")
	ErrNonceAlreadyUsed            = errors.New("nonce already used")
	ErrUnauthorizedUser            = errors.New("unauthorized user")
	ErrAdminDepositShouldBeSigned  = errors.New("admin deposit should be signed")
	ErrDuplicateRequestId          = errors.New("duplicate request id")
	ErrRequiresMigration           = errors.New("requires migration")

	codeToErr = map[Code]error{
		CodeInvalidSignersCount:         ErrInvalidSignersCount,
		CodeInvalidThreshold:            ErrInvalidThreshold,
		CodeDuplicateSigner:             ErrDuplicateSigner,
		CodeInvalidAmount:               ErrInvalidAmount,
		CodeNoDepositsProvided:          ErrNoDepositsProvided,
		CodeNoWithdrawalsProvided:       ErrNoWithdrawalsProvided,
		CodeAssetNotWhitelisted:         ErrAssetNotWhitelisted,
		CodeTokenAccountNotFound:        ErrTokenAccountNotFound,
		CodeInsufficientFunds:           ErrInsufficientFunds,
		CodeTicketExpired:               ErrTicketExpired,
		CodeInvalidVault:                ErrInvalidVault,
		CodeInvalidRecipient:            ErrInvalidRecipient,
		CodeInvalidNetwork:              ErrInvalidNetwork,
		CodeInsufficientSignatures:      ErrInsufficientSignatures,
		CodeInsufficientValidSignatures: ErrInsufficientValidSignatures,
		CodeNonceAlreadyUsed:            ErrNonceAlreadyUsed,
		CodeUnauthorizedUser:            ErrUnauthorizedUser,
		CodeAdminDepositShouldBeSigned:  ErrAdminDepositShouldBeSigned,
		CodeDuplicateRequestId:          ErrDuplicateRequestId,
		CodeRequiresMigration:           ErrRequiresMigration,
		CodeNoSignaturesProvided:        ErrNoSignaturesProvided,
	}

	errToCode map[error]Code
)

func init() {
	errToCode = make(map[error]Code, len(codeToErr))
	for code, err := range codeToErr {
		errToCode[err] = code
	}
}

// Fault pairs a sentinel error with its stable wire ordinal, so callers can
// use either errors.Is against the sentinel or Code() against the public
// error ABI.
type Fault struct {
	err  error
	code Code
}

func newFault(err error) *Fault {
	code, ok := errToCode[err]
	if !ok {
		panic("vault: fault constructed from an unregistered sentinel: " + err.Error())
	}
	return &Fault{err: err, code: code}
}

func (f *Fault) Error() string { return f.err.Error() }
func (f *Fault) Unwrap() error { return f.err }
func (f *Fault) Code() Code    { return f.code }

// Wrap promotes a sentinel error declared in this package into a *Fault.
// Passing any other error is a programming error and panics.
func Wrap(err error) *Fault { return newFault(err) }
