package evm

import (
	"context"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// validRecoveryIDs are the v values a signer may return, raw or offset by 27.
var validRecoveryIDs = []byte{0, 1, types.SignatureVOffset, types.SignatureVOffset + 1}

// AdjustVInSignature normalizes the recovery byte of a freshly produced signature into the form
// the Safe contract verifies.
//
// Raw 0/1 values become 27/28. For eth_sign the signer hashed the EIP-191 prefixed message, which
// the contract only knows if v is raised by 4: when the signature does not recover to signer from
// the bare hash, v becomes 31/32.
func AdjustVInSignature(method types.SigningMethod, sig []byte, hash common.Hash, signer common.Address) ([]byte, error) {
	parsed, err := types.NewSignatureFromBytes(sig)
	if err != nil {
		return nil, sdkerrors.NewInvalidSignatureError(err.Error())
	}
	if !slices.Contains(validRecoveryIDs, parsed.V) {
		return nil, sdkerrors.NewInvalidSignatureError(fmt.Sprintf("unexpected v value %d", parsed.V))
	}

	if parsed.V < types.SignatureVOffset {
		parsed.V += types.SignatureVOffset
	}

	switch method {
	case types.SigningMethodEthSign:
		if !signedWithoutPrefix(parsed, hash, signer) {
			parsed.V += types.SignatureEthSignVOffset
		}
	case types.SigningMethodTypedData:
	default:
		return nil, sdkerrors.NewValidationError(fmt.Sprintf("unsupported signing method %q", method))
	}

	return parsed.ToBytes(), nil
}

func signedWithoutPrefix(sig types.Signature, hash common.Hash, signer common.Address) bool {
	recovered, err := sig.Recover(hash)

	return err == nil && recovered == signer
}

// RecoverSigner returns the owner a Safe signature stands for, following the contract's
// checkSignatures rules: v == 1 is a pre-validated owner in r, v > 30 was made over the EIP-191
// prefixed hash with v - 4, and anything else over the bare hash. Contract signatures (v == 0)
// cannot be checked off-chain.
func RecoverSigner(data []byte, hash common.Hash) (common.Address, error) {
	sig, err := types.NewSignatureFromBytes(data)
	if err != nil {
		return common.Address{}, sdkerrors.NewInvalidSignatureError(err.Error())
	}

	switch {
	case sig.V == 0:
		return common.Address{}, sdkerrors.NewInvalidSignatureError("contract signatures cannot be verified off-chain")
	case sig.V == types.PreValidatedSignatureV:
		return common.BytesToAddress(sig.R.Bytes()), nil
	case sig.V > types.SignatureVOffset+3:
		sig.V -= types.SignatureEthSignVOffset
		return sig.Recover(common.BytesToHash(accounts.TextHash(hash.Bytes())))
	default:
		return sig.Recover(hash)
	}
}

// SignTransactionHash signs hash with eth_sign through the provider and attributes the result to
// the connected account.
func SignTransactionHash(ctx context.Context, provider sdk.Provider, hash common.Hash) (types.SafeSignature, error) {
	signer, err := provider.GetSignerAddress(ctx)
	if err != nil {
		return types.SafeSignature{}, fmt.Errorf("failed to get signer address: %w", err)
	}

	raw, err := provider.SignMessage(ctx, hash.Bytes())
	if err != nil {
		return types.SafeSignature{}, fmt.Errorf("failed to sign transaction hash: %w", err)
	}

	adjusted, err := AdjustVInSignature(types.SigningMethodEthSign, raw, hash, signer)
	if err != nil {
		return types.SafeSignature{}, err
	}

	return types.SafeSignature{Signer: signer, Data: adjusted}, nil
}

// SignTypedData signs the EIP-712 payload through the provider.
func SignTypedData(ctx context.Context, provider sdk.Provider, typedData apitypes.TypedData) (types.SafeSignature, error) {
	signer, err := provider.GetSignerAddress(ctx)
	if err != nil {
		return types.SafeSignature{}, fmt.Errorf("failed to get signer address: %w", err)
	}

	hash, err := TypedDataHash(typedData)
	if err != nil {
		return types.SafeSignature{}, err
	}

	raw, err := provider.SignTypedData(ctx, typedData)
	if err != nil {
		return types.SafeSignature{}, fmt.Errorf("failed to sign typed data: %w", err)
	}

	adjusted, err := AdjustVInSignature(types.SigningMethodTypedData, raw, hash, signer)
	if err != nil {
		return types.SafeSignature{}, err
	}

	return types.SafeSignature{Signer: signer, Data: adjusted}, nil
}
