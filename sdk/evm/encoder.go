package evm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm/bindings"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

var (
	safeABI         = bindings.GnosisSafeABI()
	proxyFactoryABI = bindings.GnosisSafeProxyFactoryABI()
	multiSendABI    = bindings.MultiSendABI()
)

// multiSendHeaderLength is the packed prefix of each MultiSend entry: operation (1), to (20),
// value (32) and data length (32).
const multiSendHeaderLength = 1 + common.AddressLength + 32 + 32

// EncodeSetup encodes the Safe setup call used as the proxy initializer. fallbackHandler is used
// when the config does not name one.
func EncodeSetup(cfg types.SafeAccountConfig, fallbackHandler common.Address) ([]byte, error) {
	if cfg.FallbackHandler != nil {
		fallbackHandler = *cfg.FallbackHandler
	}

	data := []byte(cfg.Data)
	if data == nil {
		data = []byte{}
	}

	return safeABI.Pack("setup",
		cfg.Owners,
		new(big.Int).SetUint64(cfg.Threshold),
		cfg.To,
		data,
		fallbackHandler,
		cfg.PaymentToken,
		bigOrZero(cfg.Payment),
		cfg.PaymentReceiver,
	)
}

// EncodeGetTransactionHash encodes the Safe's getTransactionHash view call. The ten arguments
// follow the fixed SafeTx field order.
func EncodeGetTransactionHash(d types.SafeTransactionData) ([]byte, error) {
	return safeABI.Pack("getTransactionHash",
		d.To,
		bigOrZero(d.Value),
		d.Data,
		uint8(d.Operation),
		bigOrZero(d.SafeTxGas),
		bigOrZero(d.BaseGas),
		bigOrZero(d.GasPrice),
		d.GasToken,
		d.RefundReceiver,
		new(big.Int).SetUint64(d.Nonce),
	)
}

// EncodeExecTransaction encodes execTransaction with the collected signatures concatenated in
// ascending signer order.
func EncodeExecTransaction(tx *types.SafeTransaction) ([]byte, error) {
	d := tx.Data

	return safeABI.Pack("execTransaction",
		d.To,
		bigOrZero(d.Value),
		d.Data,
		uint8(d.Operation),
		bigOrZero(d.SafeTxGas),
		bigOrZero(d.BaseGas),
		bigOrZero(d.GasPrice),
		d.GasToken,
		d.RefundReceiver,
		tx.EncodedSignatures(),
	)
}

func EncodeApproveHash(hash common.Hash) ([]byte, error) {
	return safeABI.Pack("approveHash", hash)
}

func EncodeAddOwnerWithThreshold(owner common.Address, threshold uint64) ([]byte, error) {
	return safeABI.Pack("addOwnerWithThreshold", owner, new(big.Int).SetUint64(threshold))
}

func EncodeRemoveOwner(prevOwner, owner common.Address, threshold uint64) ([]byte, error) {
	return safeABI.Pack("removeOwner", prevOwner, owner, new(big.Int).SetUint64(threshold))
}

func EncodeSwapOwner(prevOwner, oldOwner, newOwner common.Address) ([]byte, error) {
	return safeABI.Pack("swapOwner", prevOwner, oldOwner, newOwner)
}

func EncodeChangeThreshold(threshold uint64) ([]byte, error) {
	return safeABI.Pack("changeThreshold", new(big.Int).SetUint64(threshold))
}

func EncodeEnableModule(module common.Address) ([]byte, error) {
	return safeABI.Pack("enableModule", module)
}

func EncodeDisableModule(prevModule, module common.Address) ([]byte, error) {
	return safeABI.Pack("disableModule", prevModule, module)
}

// EncodeCreateProxyWithNonce encodes the factory call that deploys a Safe proxy through CREATE2.
func EncodeCreateProxyWithNonce(singleton common.Address, initializer []byte, saltNonce *big.Int) ([]byte, error) {
	return proxyFactoryABI.Pack("createProxyWithNonce", singleton, initializer, bigOrZero(saltNonce))
}

// EncodeMultiSendData packs a batch into the byte string MultiSend expects: for every transaction
// operation (1 byte), to (20 bytes), value (32 bytes), data length (32 bytes) and the data itself,
// without separators or padding.
func EncodeMultiSendData(txs []types.MetaTransactionData) ([]byte, error) {
	if len(txs) == 0 {
		return nil, sdkerrors.NewEmptyBatchError()
	}

	size := 0
	for _, tx := range txs {
		size += multiSendHeaderLength + len(tx.Data)
	}

	out := make([]byte, 0, size)
	for i, tx := range txs {
		op := types.Call
		if tx.Operation != nil {
			op = *tx.Operation
		}
		if !op.Valid() {
			return nil, sdkerrors.NewValidationError(fmt.Sprintf("transaction %d: invalid operation %d", i, op))
		}

		if bigOrZero(tx.Value).Sign() < 0 {
			return nil, sdkerrors.NewValidationError(fmt.Sprintf("transaction %d: negative value", i))
		}
		value, overflow := uint256.FromBig(bigOrZero(tx.Value))
		if overflow {
			return nil, sdkerrors.NewValidationError(fmt.Sprintf("transaction %d: value out of uint256 range", i))
		}
		valueWord := value.Bytes32()
		lengthWord := uint256.NewInt(uint64(len(tx.Data))).Bytes32()

		out = append(out, byte(op))
		out = append(out, tx.To.Bytes()...)
		out = append(out, valueWord[:]...)
		out = append(out, lengthWord[:]...)
		out = append(out, tx.Data...)
	}

	return out, nil
}

// EncodeMultiSend wraps a packed batch into a multiSend(bytes) call.
func EncodeMultiSend(txs []types.MetaTransactionData) ([]byte, error) {
	packed, err := EncodeMultiSendData(txs)
	if err != nil {
		return nil, err
	}

	return multiSendABI.Pack("multiSend", packed)
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}
