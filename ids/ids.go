// Package ids defines the fixed-size identifier types shared by every layer
// of the custody engine: 32-byte account addresses and 20-byte validator
// fingerprints.
package ids

import (
	"errors"

	"github.com/mr-tron/base58"
)

const (
	AddressLength     = 32
	FingerprintLength = 20
)

var (
	Empty        = Address{}
	EmptyFingerprint = Fingerprint{}

	errWrongAddressLength     = errors.New("wrong address length")
	errWrongFingerprintLength = errors.New("wrong fingerprint length")
)

// Address is a 32-byte account identifier: a vault, treasury, nonce record,
// mint, or recipient. Addresses are opaque byte strings; the engine never
// interprets their contents beyond equality and derivation.
type Address [AddressLength]byte

func AddressFromSlice(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, errWrongAddressLength
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

// MarshalText and UnmarshalText render Address as base58 in both JSON
// values and JSON object keys (encoding/json uses TextMarshaler for map
// keys, which are not plain strings or integers).
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	decoded, err := base58.Decode(string(text))
	if err != nil {
		return err
	}
	parsed, err := AddressFromSlice(decoded)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Fingerprint is the last 20 bytes of keccak256(uncompressed secp256k1
// public key); it is the identity a validator signs with.
type Fingerprint [FingerprintLength]byte

func FingerprintFromSlice(b []byte) (Fingerprint, error) {
	var f Fingerprint
	if len(b) != FingerprintLength {
		return f, errWrongFingerprintLength
	}
	copy(f[:], b)
	return f, nil
}

func (f Fingerprint) String() string {
	return base58.Encode(f[:])
}

func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Fingerprint) UnmarshalText(text []byte) error {
	decoded, err := base58.Decode(string(text))
	if err != nil {
		return err
	}
	parsed, err := FingerprintFromSlice(decoded)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// AssetKind tags the two variants of AssetKey.
type AssetKind uint8

const (
	AssetKindNative AssetKind = 0
	AssetKindToken  AssetKind = 1
)

// AssetKey is a tagged sum type: either the native currency or a fungible
// token identified by its mint address. The zero value is NativeCurrency.
type AssetKey struct {
	Kind AssetKind
	Mint Address // only meaningful when Kind == AssetKindToken
}

func NativeCurrency() AssetKey {
	return AssetKey{Kind: AssetKindNative}
}

func Token(mint Address) AssetKey {
	return AssetKey{Kind: AssetKindToken, Mint: mint}
}

func (a AssetKey) Equal(o AssetKey) bool {
	if a.Kind != o.Kind {
		return false
	}
	if a.Kind == AssetKindNative {
		return true
	}
	return a.Mint == o.Mint
}

func (a AssetKey) String() string {
	if a.Kind == AssetKindNative {
		return "native"
	}
	return "token:" + a.Mint.String()
}
