package safe

import (
	"context"
	"fmt"
	"math/big"

	goversion "github.com/hashicorp/go-version"

	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// safeTxGasRequiredBefore is the first version whose execTransaction no longer requires a safeTxGas
// estimate.
var safeTxGasRequiredBefore = goversion.Must(goversion.NewVersion("1.3.0"))

// CreateTransaction completes a partial transaction. Fields set on partial win over options,
// options win over the on-chain nonce, and anything still missing takes its default. For Safes
// before 1.3.0 an absent safeTxGas is estimated.
func (s *Safe) CreateTransaction(
	ctx context.Context, partial types.SafeTransactionDataPartial, options ...types.SafeTransactionOptionalProps,
) (*types.SafeTransaction, error) {
	if partial.Operation != nil && !partial.Operation.Valid() {
		return nil, sdkerrors.NewValidationError("invalid operation: " + partial.Operation.String())
	}

	sources := options
	if !hasNonce(partial, options) {
		nonce, err := s.GetNonce(ctx)
		if err != nil {
			return nil, err
		}
		sources = append(sources[:len(sources):len(sources)], types.SafeTransactionOptionalProps{Nonce: &nonce})
	}

	data := types.Standardize(partial, sources...)

	if !hasSafeTxGas(partial, options) && s.requiresSafeTxGas() {
		gas, err := s.estimateSafeTxGas(ctx, data)
		if err != nil {
			return nil, err
		}
		data.SafeTxGas = gas
	}

	return types.NewSafeTransaction(data), nil
}

// CreateMultiSendTransaction batches txs into one delegatecall to MultiSend, or to
// MultiSendCallOnly when onlyCalls is set. A single transaction is not wrapped.
func (s *Safe) CreateMultiSendTransaction(
	ctx context.Context, txs []types.MetaTransactionData, onlyCalls bool, options ...types.SafeTransactionOptionalProps,
) (*types.SafeTransaction, error) {
	switch len(txs) {
	case 0:
		return nil, sdkerrors.NewEmptyBatchError()
	case 1:
		return s.CreateTransaction(ctx, metaToPartial(txs[0]), options...)
	}

	kind := types.ContractKindMultiSend
	if onlyCalls {
		kind = types.ContractKindMultiSendCallOnly
	}
	multiSend, err := s.resolve(ctx, kind)
	if err != nil {
		return nil, err
	}

	data, err := evm.EncodeMultiSend(txs)
	if err != nil {
		return nil, err
	}

	op := types.DelegateCall

	return s.CreateTransaction(ctx, types.SafeTransactionDataPartial{
		To:        multiSend,
		Value:     new(big.Int),
		Data:      data,
		Operation: &op,
	}, options...)
}

func (s *Safe) requiresSafeTxGas() bool {
	v, err := goversion.NewVersion(s.version)
	if err != nil {
		return false
	}

	return v.LessThan(safeTxGasRequiredBefore)
}

// estimateSafeTxGas estimates the inner call as if the Safe itself sent it.
func (s *Safe) estimateSafeTxGas(ctx context.Context, d types.SafeTransactionData) (*big.Int, error) {
	gas, err := s.provider.EstimateGas(ctx, s.address, d.To, d.Value, d.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate safeTxGas: %w", err)
	}

	return new(big.Int).SetUint64(gas), nil
}

func hasNonce(partial types.SafeTransactionDataPartial, options []types.SafeTransactionOptionalProps) bool {
	if partial.Nonce != nil {
		return true
	}
	for _, o := range options {
		if o.Nonce != nil {
			return true
		}
	}

	return false
}

func hasSafeTxGas(partial types.SafeTransactionDataPartial, options []types.SafeTransactionOptionalProps) bool {
	if partial.SafeTxGas != nil {
		return true
	}
	for _, o := range options {
		if o.SafeTxGas != nil {
			return true
		}
	}

	return false
}

func metaToPartial(tx types.MetaTransactionData) types.SafeTransactionDataPartial {
	return types.SafeTransactionDataPartial{
		To:        tx.To,
		Value:     tx.Value,
		Data:      tx.Data,
		Operation: tx.Operation,
	}
}
