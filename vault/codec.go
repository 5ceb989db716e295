package vault

import (
	"encoding/binary"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/pkg/crypto/secp256k1"
)

// Byte-level framing constants from the wire codec. These values are part
// of the cross-language digest agreement and must never change.
const (
	assetAmountSeparator byte = 0x40
	rotateSignerOpen     byte = 0x37
	rotateSignerClose    byte = 0x38

	assetTagNative byte = 0x00
	assetTagToken  byte = 0x01
)

func putUint64LE(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func putInt64LE(buf []byte, v int64) []byte {
	return putUint64LE(buf, uint64(v))
}

func putAddress(buf []byte, a ids.Address) []byte {
	return append(buf, a[:]...)
}

func putAssetKey(buf []byte, a ids.AssetKey) []byte {
	if a.Kind == ids.AssetKindNative {
		return append(buf, assetTagNative)
	}
	buf = append(buf, assetTagToken)
	return putAddress(buf, a.Mint)
}

func putAssetAmount(buf []byte, a AssetAmount) []byte {
	buf = putAssetKey(buf, a.Asset)
	buf = append(buf, assetAmountSeparator)
	buf = putUint64LE(buf, a.Amount)
	return buf
}

func putRotateSigners(buf []byte, signers []ids.Fingerprint) []byte {
	for _, fp := range signers {
		buf = append(buf, rotateSignerOpen)
		buf = append(buf, fp[:]...)
		buf = append(buf, rotateSignerClose)
	}
	return buf
}

func digestWithdrawal(t *WithdrawalTicket) [32]byte {
	buf := make([]byte, 0, 128)
	buf = putUint64LE(buf, t.RequestID)
	buf = putAddress(buf, t.Vault)
	buf = putAddress(buf, t.Recipient)
	for _, w := range t.Withdrawals {
		buf = putAssetAmount(buf, w)
	}
	buf = putInt64LE(buf, t.Expiry)
	buf = putUint64LE(buf, t.NetworkID)
	return secp256k1.Keccak256([]byte(domainWithdrawal), buf)
}

func digestAdminDeposit(t *AdminDepositTicket) [32]byte {
	buf := make([]byte, 0, 128)
	buf = putUint64LE(buf, t.RequestID)
	buf = putAddress(buf, t.Vault)
	buf = putAddress(buf, t.User)
	for _, d := range t.Deposits {
		buf = putAssetAmount(buf, d)
	}
	buf = putInt64LE(buf, t.Expiry)
	buf = putUint64LE(buf, t.NetworkID)
	return secp256k1.Keccak256([]byte(domainAdminDeposit), buf)
}

func digestAddAsset(t *AddAssetTicket) [32]byte {
	buf := make([]byte, 0, 96)
	buf = putUint64LE(buf, t.RequestID)
	buf = putAddress(buf, t.Vault)
	buf = putInt64LE(buf, t.Expiry)
	buf = putUint64LE(buf, t.NetworkID)
	buf = putAssetKey(buf, t.Asset)
	return secp256k1.Keccak256([]byte(domainAddAsset), buf)
}

func digestRemoveAsset(t *RemoveAssetTicket) [32]byte {
	buf := make([]byte, 0, 96)
	buf = putUint64LE(buf, t.RequestID)
	buf = putAddress(buf, t.Vault)
	buf = putInt64LE(buf, t.Expiry)
	buf = putUint64LE(buf, t.NetworkID)
	buf = putAssetKey(buf, t.Asset)
	return secp256k1.Keccak256([]byte(domainRemoveAsset), buf)
}

func digestRotateValidators(t *RotateValidatorsTicket) [32]byte {
	buf := make([]byte, 0, 96+len(t.Signers)*22)
	buf = putUint64LE(buf, t.RequestID)
	buf = putAddress(buf, t.Vault)
	buf = putRotateSigners(buf, t.Signers)
	buf = append(buf, t.MThreshold)
	buf = putInt64LE(buf, t.Expiry)
	buf = putUint64LE(buf, t.NetworkID)
	return secp256k1.Keccak256([]byte(domainRotateValidators), buf)
}
