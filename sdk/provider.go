package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// Provider is one connection to an EVM chain: an RPC endpoint plus the account that signs and
// submits transactions. Connecting to another chain or account means using another Provider.
//
// Retries and timeouts for transient RPC failures belong to the implementation, never to callers.
type Provider interface {
	// CallContract performs an eth_call against to and returns the raw return data.
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)

	// SendTransaction submits a transaction from the connected account and waits for its receipt.
	SendTransaction(ctx context.Context, to common.Address, value *big.Int, data []byte, opts types.TransactionOptions) (types.TransactionResult, error)

	// EstimateGas estimates the gas a call from from to to would use.
	EstimateGas(ctx context.Context, from, to common.Address, value *big.Int, data []byte) (uint64, error)

	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
	GetChainID(ctx context.Context) (*big.Int, error)

	// IsContractDeployed reports whether address holds code.
	IsContractDeployed(ctx context.Context, address common.Address) (bool, error)

	// SignMessage signs message as an EIP-191 personal message (eth_sign).
	SignMessage(ctx context.Context, message []byte) ([]byte, error)

	// SignTypedData signs an EIP-712 payload.
	SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)

	GetSignerAddress(ctx context.Context) (common.Address, error)
}
