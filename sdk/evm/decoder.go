package evm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/polywrap/safe-contracts-wrapper-sub000/internal/utils/safecast"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// DecodedCall is a Safe, factory or MultiSend call split into its method and named arguments.
type DecodedCall struct {
	FunctionName string
	InputKeys    gethabi.Arguments
	InputArgs    []any
}

// String renders the arguments as an indented JSON object keyed by argument name.
func (d *DecodedCall) String() (string, string, error) {
	inputMap := make(map[string]any, len(d.InputKeys))
	for i, key := range d.InputKeys {
		inputMap[key.Name] = d.InputArgs[i]
	}

	byteMap, err := json.MarshalIndent(inputMap, "", "  ")
	if err != nil {
		return "", "", err
	}

	return d.FunctionName, string(byteMap), nil
}

// DecodeCall decodes call data addressed to a Safe, a proxy factory or a MultiSend contract.
func DecodeCall(data []byte) (*DecodedCall, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("call data too short: %d bytes", len(data))
	}

	for _, parsed := range []*gethabi.ABI{safeABI, proxyFactoryABI, multiSendABI} {
		method, err := parsed.MethodById(data[:4])
		if err != nil {
			continue
		}

		args, err := method.Inputs.Unpack(data[4:])
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s arguments: %w", method.Name, err)
		}

		return &DecodedCall{
			FunctionName: method.Name,
			InputKeys:    method.Inputs,
			InputArgs:    args,
		}, nil
	}

	return nil, fmt.Errorf("unknown method selector 0x%x", data[:4])
}

// DecodeExecTransaction splits execTransaction call data back into the transaction fields and the
// raw signature bytes. The nonce is not part of the call and is left at zero.
func DecodeExecTransaction(data []byte) (types.SafeTransactionData, []byte, error) {
	call, err := DecodeCall(data)
	if err != nil {
		return types.SafeTransactionData{}, nil, err
	}
	if call.FunctionName != "execTransaction" {
		return types.SafeTransactionData{}, nil, fmt.Errorf("expected execTransaction, got %s", call.FunctionName)
	}

	a := call.InputArgs
	op, ok := a[3].(uint8)
	if !ok || !types.OperationType(op).Valid() {
		return types.SafeTransactionData{}, nil, fmt.Errorf("invalid operation %v", a[3])
	}

	d := types.SafeTransactionData{
		To:             a[0].(common.Address),
		Value:          a[1].(*big.Int),
		Data:           a[2].([]byte),
		Operation:      types.OperationType(op),
		SafeTxGas:      a[4].(*big.Int),
		BaseGas:        a[5].(*big.Int),
		GasPrice:       a[6].(*big.Int),
		GasToken:       a[7].(common.Address),
		RefundReceiver: a[8].(common.Address),
	}

	return d, a[9].([]byte), nil
}

// DecodeMultiSend decodes a multiSend(bytes) call into its batch.
func DecodeMultiSend(data []byte) ([]types.MetaTransactionData, error) {
	call, err := DecodeCall(data)
	if err != nil {
		return nil, err
	}
	if call.FunctionName != "multiSend" {
		return nil, fmt.Errorf("expected multiSend, got %s", call.FunctionName)
	}

	return DecodeMultiSendData(call.InputArgs[0].([]byte))
}

// DecodeMultiSendData reverses EncodeMultiSendData.
func DecodeMultiSendData(packed []byte) ([]types.MetaTransactionData, error) {
	var txs []types.MetaTransactionData

	for offset := 0; offset < len(packed); {
		if len(packed)-offset < multiSendHeaderLength {
			return nil, errors.New("truncated multisend entry header")
		}

		op := types.OperationType(packed[offset])
		if !op.Valid() {
			return nil, fmt.Errorf("invalid operation %d at offset %d", op, offset)
		}
		offset++

		to := common.BytesToAddress(packed[offset : offset+common.AddressLength])
		offset += common.AddressLength

		value := new(uint256.Int).SetBytes32(packed[offset : offset+32])
		offset += 32

		length := new(uint256.Int).SetBytes32(packed[offset : offset+32])
		offset += 32

		n, err := safecast.Uint64ToInt64(length.Uint64())
		if !length.IsUint64() || err != nil || n > int64(len(packed)-offset) {
			return nil, fmt.Errorf("data length %s exceeds remaining %d bytes", length.Dec(), len(packed)-offset)
		}

		data := make([]byte, n)
		copy(data, packed[offset:offset+int(n)])
		offset += int(n)

		txs = append(txs, types.MetaTransactionData{
			To:        to,
			Value:     value.ToBig(),
			Data:      data,
			Operation: &op,
		})
	}

	if len(txs) == 0 {
		return nil, errors.New("empty multisend payload")
	}

	return txs, nil
}
