package vault

import (
	"go.uber.org/zap"

	"github.com/strike-io/strike-core/ids"
	"github.com/strike-io/strike-core/internal/logging"
)

// LogDeposit emits the Deposit{request_id} event. request_id uniqueness is
// not enforced for deposits.
func LogDeposit(log logging.Logger, requestID uint64) {
	log.Info("deposit", zap.Uint64("request_id", requestID))
}

// LogWithdraw emits the Withdraw{request_id} event.
func LogWithdraw(log logging.Logger, requestID uint64) {
	log.Info("withdraw", zap.Uint64("request_id", requestID))
}

// LogAssetAdded emits the AssetAdded{asset_key} event.
func LogAssetAdded(log logging.Logger, asset ids.AssetKey) {
	log.Info("asset_added", zap.Stringer("asset", asset))
}

// LogAssetRemoved emits the AssetRemoved{asset_key} event.
func LogAssetRemoved(log logging.Logger, asset ids.AssetKey) {
	log.Info("asset_removed", zap.Stringer("asset", asset))
}

// LogValidatorsRotated emits the ValidatorsRotated{new_signers,
// new_threshold} event.
func LogValidatorsRotated(log logging.Logger, newSigners []ids.Fingerprint, newThreshold uint8) {
	fields := make([]string, len(newSigners))
	for i, fp := range newSigners {
		fields[i] = fp.String()
	}
	log.Info("validators_rotated",
		zap.Strings("new_signers", fields),
		zap.Uint8("new_threshold", newThreshold),
	)
}

// LogRejected emits a Warn-level entry for a rejected instruction, carrying
// the stable error code so off-chain tooling can key off the ordinal rather
// than parsing the message.
func LogRejected(log logging.Logger, instruction string, requestID uint64, fault *Fault) {
	log.Warn("instruction_rejected",
		zap.String("instruction", instruction),
		zap.Uint64("request_id", requestID),
		zap.Uint8("code", uint8(fault.Code())),
		zap.String("error", fault.Error()),
	)
}
