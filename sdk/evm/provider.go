package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/avast/retry-go"
	"github.com/ethereum/go-ethereum"
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 200 * time.Millisecond
)

// Backend is the part of an Ethereum client the Provider needs. Both *ethclient.Client and the
// simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

var _ sdk.Provider = (*Provider)(nil)

// Provider implements sdk.Provider on top of a go-ethereum client and a Signer. Read calls are
// retried on error; transaction submission is not.
type Provider struct {
	backend       Backend
	signer        Signer
	retryAttempts uint
	retryDelay    time.Duration
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithRetry sets how often read calls are attempted and the delay between attempts.
func WithRetry(attempts uint, delay time.Duration) ProviderOption {
	return func(p *Provider) {
		p.retryAttempts = attempts
		p.retryDelay = delay
	}
}

// NewProvider creates a Provider for backend acting as signer.
func NewProvider(backend Backend, signer Signer, opts ...ProviderOption) *Provider {
	p := &Provider{
		backend:       backend,
		signer:        signer,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Dial connects to rpcURL.
func Dial(ctx context.Context, rpcURL string, signer Signer, opts ...ProviderOption) (*Provider, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
	}

	return NewProvider(client, signer, opts...), nil
}

func (p *Provider) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := ethereum.CallMsg{To: &to, Data: data}
	if from, err := p.signer.Address(); err == nil {
		msg.From = from
	}

	return withRetry(ctx, p, func() ([]byte, error) {
		return p.backend.CallContract(ctx, msg, nil)
	})
}

// SendTransaction signs and submits a transaction, then blocks until it is mined. A reverted
// transaction is reported as an error together with its receipt.
func (p *Provider) SendTransaction(
	ctx context.Context,
	to common.Address,
	value *big.Int,
	data []byte,
	opts types.TransactionOptions,
) (types.TransactionResult, error) {
	from, err := p.signer.Address()
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("failed to get signer address: %w", err)
	}
	if opts.From != nil && *opts.From != from {
		return types.TransactionResult{}, fmt.Errorf("transaction sender %s does not match signer %s", opts.From.Hex(), from.Hex())
	}

	chainID, err := p.GetChainID(ctx)
	if err != nil {
		return types.TransactionResult{}, err
	}

	// bind refuses to estimate calls to addresses without code, so plain transfers are estimated
	// here.
	gasLimit := opts.GasLimitValue()
	if gasLimit == 0 {
		gasLimit, err = p.EstimateGas(ctx, from, to, value, data)
		if err != nil {
			return types.TransactionResult{}, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	txOpts := &bind.TransactOpts{
		From:      from,
		Context:   ctx,
		Value:     value,
		GasLimit:  gasLimit,
		GasPrice:  opts.GasPrice,
		GasFeeCap: opts.MaxFeePerGas,
		GasTipCap: opts.MaxPriorityFeePerGas,
		Signer: func(addr common.Address, tx *gethtypes.Transaction) (*gethtypes.Transaction, error) {
			if addr != from {
				return nil, bind.ErrNotAuthorized
			}

			return p.signer.SignTx(tx, chainID)
		},
	}
	if opts.Nonce != nil {
		txOpts.Nonce = new(big.Int).SetUint64(*opts.Nonce)
	}

	contract := bind.NewBoundContract(to, gethabi.ABI{}, p.backend, p.backend, p.backend)
	tx, err := contract.RawTransact(txOpts, data)
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("failed to send transaction to %s: %w", to.Hex(), err)
	}

	receipt, err := bind.WaitMined(ctx, p.backend, tx)
	if err != nil {
		return types.TransactionResult{Hash: tx.Hash()}, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}

	result := types.TransactionResult{Hash: tx.Hash(), Receipt: receipt}
	if receipt.Status != gethtypes.ReceiptStatusSuccessful {
		return result, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}

	return result, nil
}

func (p *Provider) EstimateGas(ctx context.Context, from, to common.Address, value *big.Int, data []byte) (uint64, error) {
	msg := ethereum.CallMsg{From: from, To: &to, Value: value, Data: data}

	return withRetry(ctx, p, func() (uint64, error) {
		return p.backend.EstimateGas(ctx, msg)
	})
}

func (p *Provider) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	return withRetry(ctx, p, func() (*big.Int, error) {
		return p.backend.BalanceAt(ctx, address, nil)
	})
}

func (p *Provider) GetChainID(ctx context.Context) (*big.Int, error) {
	return withRetry(ctx, p, func() (*big.Int, error) {
		return p.backend.ChainID(ctx)
	})
}

func (p *Provider) IsContractDeployed(ctx context.Context, address common.Address) (bool, error) {
	code, err := withRetry(ctx, p, func() ([]byte, error) {
		return p.backend.CodeAt(ctx, address, nil)
	})
	if err != nil {
		return false, err
	}

	return len(code) > 0, nil
}

func (p *Provider) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	return p.signer.SignText(message)
}

func (p *Provider) SignTypedData(_ context.Context, data apitypes.TypedData) ([]byte, error) {
	return p.signer.SignTypedData(data)
}

func (p *Provider) GetSignerAddress(_ context.Context) (common.Address, error) {
	return p.signer.Address()
}

func withRetry[T any](ctx context.Context, p *Provider, fn func() (T, error)) (T, error) {
	var result T

	err := retry.Do(
		func() error {
			var err error
			result, err = fn()

			return err
		},
		retry.Context(ctx),
		retry.Attempts(p.retryAttempts),
		retry.Delay(p.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
	)

	return result, err
}
