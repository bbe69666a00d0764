package evm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	goversion "github.com/hashicorp/go-version"

	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

const safeTxPrimaryType = "SafeTx"

var (
	// chainIDDomainVersion is the first Safe version whose EIP-712 domain includes the chain ID.
	chainIDDomainVersion = goversion.Must(goversion.NewVersion("1.3.0"))

	safeTxTypes = []apitypes.Type{
		{Name: "to", Type: "address"},
		{Name: "value", Type: "uint256"},
		{Name: "data", Type: "bytes"},
		{Name: "operation", Type: "uint8"},
		{Name: "safeTxGas", Type: "uint256"},
		{Name: "baseGas", Type: "uint256"},
		{Name: "gasPrice", Type: "uint256"},
		{Name: "gasToken", Type: "address"},
		{Name: "refundReceiver", Type: "address"},
		{Name: "nonce", Type: "uint256"},
	}
)

// DomainIncludesChainID reports whether the EIP-712 domain of the given Safe version carries
// chainId next to verifyingContract.
func DomainIncludesChainID(version string) (bool, error) {
	v, err := goversion.NewVersion(version)
	if err != nil {
		return false, sdkerrors.NewUnsupportedVersionError(version)
	}

	return v.GreaterThanOrEqual(chainIDDomainVersion), nil
}

// SafeTxTypedData builds the EIP-712 payload that owners sign for a Safe transaction.
func SafeTxTypedData(safe common.Address, chainID *big.Int, version string, d types.SafeTransactionData) (apitypes.TypedData, error) {
	withChainID, err := DomainIncludesChainID(version)
	if err != nil {
		return apitypes.TypedData{}, err
	}

	domainTypes := []apitypes.Type{{Name: "verifyingContract", Type: "address"}}
	domain := apitypes.TypedDataDomain{VerifyingContract: safe.Hex()}
	if withChainID {
		if chainID == nil {
			return apitypes.TypedData{}, sdkerrors.NewValidationError("chain ID is required for Safe " + version)
		}
		domainTypes = append([]apitypes.Type{{Name: "chainId", Type: "uint256"}}, domainTypes...)
		domain.ChainId = (*math.HexOrDecimal256)(new(big.Int).Set(chainID))
	}

	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain":    domainTypes,
			safeTxPrimaryType: safeTxTypes,
		},
		PrimaryType: safeTxPrimaryType,
		Domain:      domain,
		Message: apitypes.TypedDataMessage{
			"to":             d.To.Hex(),
			"value":          bigOrZero(d.Value).String(),
			"data":           hexutil.Encode(nonNilBytes(d.Data)),
			"operation":      fmt.Sprintf("%d", d.Operation),
			"safeTxGas":      bigOrZero(d.SafeTxGas).String(),
			"baseGas":        bigOrZero(d.BaseGas).String(),
			"gasPrice":       bigOrZero(d.GasPrice).String(),
			"gasToken":       d.GasToken.Hex(),
			"refundReceiver": d.RefundReceiver.Hex(),
			"nonce":          fmt.Sprintf("%d", d.Nonce),
		},
	}, nil
}

// TypedDataHash returns keccak256(0x19 0x01 ‖ domainSeparator ‖ hashStruct(message)).
func TypedDataHash(typedData apitypes.TypedData) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash typed data: %w", err)
	}

	return common.BytesToHash(hash), nil
}

// TransactionHash computes the Safe transaction hash off-chain. It equals the value returned by
// the Safe's getTransactionHash view for the same inputs.
func TransactionHash(safe common.Address, chainID *big.Int, version string, d types.SafeTransactionData) (common.Hash, error) {
	typedData, err := SafeTxTypedData(safe, chainID, version, d)
	if err != nil {
		return common.Hash{}, err
	}

	return TypedDataHash(typedData)
}

func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}

	return b
}
