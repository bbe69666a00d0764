package safe

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// GetTransactionHash asks the Safe contract for the hash of tx.
func (s *Safe) GetTransactionHash(ctx context.Context, tx *types.SafeTransaction) (common.Hash, error) {
	return s.inspector.GetTransactionHash(ctx, tx.Data)
}

// ComputeTransactionHash derives the hash of tx off-chain from its EIP-712 encoding. It always
// equals GetTransactionHash for the same Safe and chain.
func (s *Safe) ComputeTransactionHash(ctx context.Context, tx *types.SafeTransaction) (common.Hash, error) {
	chainID, err := s.provider.GetChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get chain ID: %w", err)
	}

	return evm.TransactionHash(s.address, chainID, s.version, tx.Data)
}

// SignTransactionHash signs hash with eth_sign as the connected account, which must be an owner.
func (s *Safe) SignTransactionHash(ctx context.Context, hash common.Hash) (types.SafeSignature, error) {
	if _, err := s.requireOwner(ctx, sdkerrors.ActionSigned); err != nil {
		return types.SafeSignature{}, err
	}

	return evm.SignTransactionHash(ctx, s.provider, hash)
}

// SignTypedData signs the EIP-712 form of tx as the connected account, which must be an owner.
func (s *Safe) SignTypedData(ctx context.Context, tx *types.SafeTransaction) (types.SafeSignature, error) {
	if _, err := s.requireOwner(ctx, sdkerrors.ActionSigned); err != nil {
		return types.SafeSignature{}, err
	}

	return s.signTypedData(ctx, tx)
}

func (s *Safe) signTypedData(ctx context.Context, tx *types.SafeTransaction) (types.SafeSignature, error) {
	chainID, err := s.provider.GetChainID(ctx)
	if err != nil {
		return types.SafeSignature{}, fmt.Errorf("failed to get chain ID: %w", err)
	}

	typedData, err := evm.SafeTxTypedData(s.address, chainID, s.version, tx.Data)
	if err != nil {
		return types.SafeSignature{}, err
	}

	return evm.SignTypedData(ctx, s.provider, typedData)
}

// AddSignature signs tx as the connected account and stores the signature on tx. Nothing happens
// when that account already signed.
func (s *Safe) AddSignature(ctx context.Context, tx *types.SafeTransaction, method types.SigningMethod) error {
	signer, err := s.requireOwner(ctx, sdkerrors.ActionSigned)
	if err != nil {
		return err
	}
	if tx.HasSignature(signer) {
		sdk.LoggerFrom(ctx).Debugf("%s already signed the transaction, skipping", signer.Hex())
		return nil
	}

	var sig types.SafeSignature
	switch method {
	case types.SigningMethodEthSign:
		hash, herr := s.GetTransactionHash(ctx, tx)
		if herr != nil {
			return herr
		}
		sig, err = evm.SignTransactionHash(ctx, s.provider, hash)
	case types.SigningMethodTypedData:
		sig, err = s.signTypedData(ctx, tx)
	default:
		return sdkerrors.NewValidationError(fmt.Sprintf("unsupported signing method %q", method))
	}
	if err != nil {
		return err
	}

	tx.AddSignature(sig)

	return nil
}

// SignTransaction returns a copy of tx carrying the connected account's signature. tx is left
// untouched.
func (s *Safe) SignTransaction(ctx context.Context, tx *types.SafeTransaction, method types.SigningMethod) (*types.SafeTransaction, error) {
	signed := tx.Clone()
	if err := s.AddSignature(ctx, signed, method); err != nil {
		return nil, err
	}

	return signed, nil
}

// GetSignature returns the signature owner contributed to tx.
func (s *Safe) GetSignature(tx *types.SafeTransaction, owner common.Address) (types.SafeSignature, bool) {
	return tx.Signature(owner)
}

// ApproveTransactionHash records the connected account's approval of hash in the Safe contract.
func (s *Safe) ApproveTransactionHash(ctx context.Context, hash common.Hash, opts types.TransactionOptions) (types.TransactionResult, error) {
	owner, err := s.requireOwner(ctx, sdkerrors.ActionApproved)
	if err != nil {
		return types.TransactionResult{}, err
	}
	if opts.HasConflictingGas() {
		return types.TransactionResult{}, sdkerrors.NewConflictingOptionsError()
	}

	data, err := evm.EncodeApproveHash(hash)
	if err != nil {
		return types.TransactionResult{}, err
	}

	sdk.LoggerFrom(ctx).Infof("Approving hash %s on Safe %s as %s", hash.Hex(), s.address.Hex(), owner.Hex())

	result, err := s.provider.SendTransaction(ctx, s.address, nil, data, opts)
	if err != nil {
		return result, fmt.Errorf("failed to approve hash %s: %w", hash.Hex(), err)
	}

	return result, nil
}

// GetOwnersWhoApprovedTx lists the current owners that approved hash on-chain.
func (s *Safe) GetOwnersWhoApprovedTx(ctx context.Context, hash common.Hash) ([]common.Address, error) {
	owners, err := s.GetOwners(ctx)
	if err != nil {
		return nil, err
	}

	approved := make(map[common.Address]bool, len(owners))
	for _, owner := range owners {
		marker, err := s.inspector.ApprovedHashes(ctx, owner, hash)
		if err != nil {
			return nil, err
		}
		approved[owner] = marker.Sign() != 0
	}

	return lo.Filter(owners, func(owner common.Address, _ int) bool {
		return approved[owner]
	}), nil
}

// SignatureReport is the off-chain verdict on the signatures collected for a transaction.
type SignatureReport struct {
	Hash      common.Hash
	Threshold uint64

	// Owners are the distinct current owners a signature on the transaction stands for.
	Owners []common.Address

	// Invalid lists signers whose signature does not recover to them or who are not owners.
	Invalid []common.Address
}

// Missing returns how many more owner signatures the threshold needs.
func (r SignatureReport) Missing() uint64 {
	collected := uint64(len(r.Owners))
	if collected >= r.Threshold {
		return 0
	}

	return r.Threshold - collected
}

// CheckSignatures verifies every signature on tx against the off-chain hash and the current owner
// set. A pre-validated signature only counts for an owner that approved the hash on-chain or that
// is the connected account, mirroring the contract's check at execution time.
func (s *Safe) CheckSignatures(ctx context.Context, tx *types.SafeTransaction) (SignatureReport, error) {
	hash, err := s.ComputeTransactionHash(ctx, tx)
	if err != nil {
		return SignatureReport{}, err
	}
	owners, err := s.GetOwners(ctx)
	if err != nil {
		return SignatureReport{}, err
	}
	threshold, err := s.GetThreshold(ctx)
	if err != nil {
		return SignatureReport{}, err
	}
	submitter, err := s.provider.GetSignerAddress(ctx)
	if err != nil {
		return SignatureReport{}, fmt.Errorf("failed to get signer address: %w", err)
	}

	report := SignatureReport{Hash: hash, Threshold: threshold}
	for _, sig := range tx.Signatures() {
		recovered, rerr := evm.RecoverSigner(sig.Data, hash)
		if rerr != nil || recovered != sig.Signer || !lo.Contains(owners, recovered) {
			report.Invalid = append(report.Invalid, sig.Signer)
			continue
		}

		if sig.IsPreValidated() && recovered != submitter {
			marker, aerr := s.inspector.ApprovedHashes(ctx, recovered, hash)
			if aerr != nil {
				return SignatureReport{}, aerr
			}
			if marker.Sign() == 0 {
				report.Invalid = append(report.Invalid, sig.Signer)
				continue
			}
		}
		report.Owners = append(report.Owners, recovered)
	}

	return report, nil
}

// requireOwner returns the connected account if it is an owner, and a NotOwnerError for action
// otherwise.
func (s *Safe) requireOwner(ctx context.Context, action string) (common.Address, error) {
	signer, err := s.provider.GetSignerAddress(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get signer address: %w", err)
	}

	owners, err := s.GetOwners(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if !lo.Contains(owners, signer) {
		return common.Address{}, sdkerrors.NewNotOwnerError(signer, action)
	}

	return signer, nil
}
