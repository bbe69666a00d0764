package safe

import (
	"context"
	"fmt"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// ExecuteTransaction submits tx through execTransaction from the connected account. The account
// does not have to be an owner.
//
// Owners that approved the transaction hash on-chain, and the submitter when it is an owner, are
// added as pre-validated signatures. The call fails before anything is sent when the Safe cannot
// cover tx.Value, when fewer signatures than the threshold are available, or when opts sets both
// Gas and GasLimit. tx itself is never modified.
func (s *Safe) ExecuteTransaction(ctx context.Context, tx *types.SafeTransaction, opts types.TransactionOptions) (types.TransactionResult, error) {
	lggr := sdk.LoggerFrom(ctx)
	signed := tx.Clone()

	hash, err := s.GetTransactionHash(ctx, signed)
	if err != nil {
		return types.TransactionResult{}, err
	}

	approvers, err := s.GetOwnersWhoApprovedTx(ctx, hash)
	if err != nil {
		return types.TransactionResult{}, err
	}
	for _, owner := range approvers {
		signed.AddSignature(types.NewPreValidatedSignature(owner))
	}

	submitter, err := s.provider.GetSignerAddress(ctx)
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("failed to get signer address: %w", err)
	}
	isOwner, err := s.IsOwner(ctx, submitter)
	if err != nil {
		return types.TransactionResult{}, err
	}
	if isOwner {
		signed.AddSignature(types.NewPreValidatedSignature(submitter))
	}

	if value := signed.Data.Value; value != nil && value.Sign() > 0 {
		balance, berr := s.GetBalance(ctx)
		if berr != nil {
			return types.TransactionResult{}, berr
		}
		if balance.Cmp(value) < 0 {
			return types.TransactionResult{}, sdkerrors.NewInsufficientFundsError(value, balance)
		}
	}

	threshold, err := s.GetThreshold(ctx)
	if err != nil {
		return types.TransactionResult{}, err
	}
	if collected := uint64(signed.SignatureCount()); collected < threshold {
		return types.TransactionResult{}, sdkerrors.NewInsufficientSignaturesError(threshold, collected)
	}

	if opts.HasConflictingGas() {
		return types.TransactionResult{}, sdkerrors.NewConflictingOptionsError()
	}

	data, err := evm.EncodeExecTransaction(signed)
	if err != nil {
		return types.TransactionResult{}, err
	}

	lggr.Infof("Executing Safe transaction %s on %s with %d signatures", hash.Hex(), s.address.Hex(), signed.SignatureCount())

	result, err := s.provider.SendTransaction(ctx, s.address, nil, data, opts)
	if err != nil {
		return result, fmt.Errorf("failed to execute Safe transaction %s: %w", hash.Hex(), evm.BuildExecutionError(err))
	}

	outcome, ok, err := evm.ParseExecutionResult(result.Receipt, s.address)
	if err != nil {
		return result, fmt.Errorf("failed to read the outcome of Safe transaction %s: %w", hash.Hex(), err)
	}
	if ok && !outcome.Success {
		return result, sdkerrors.NewExecutionFailureError(outcome.SafeTxHash, result.Hash)
	}

	lggr.Infof("Safe transaction %s executed in %s", hash.Hex(), result.Hash.Hex())

	return result, nil
}
