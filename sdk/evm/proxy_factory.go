package evm

import (
	"context"
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// ProxyFactory deploys Safe proxies through a GnosisSafeProxyFactory contract.
type ProxyFactory struct {
	provider sdk.Provider
	address  common.Address
}

func NewProxyFactory(provider sdk.Provider, address common.Address) *ProxyFactory {
	return &ProxyFactory{provider: provider, address: address}
}

// Address returns the factory address.
func (f *ProxyFactory) Address() common.Address {
	return f.address
}

// ProxyCreationCode reads the proxy creation bytecode the factory deploys.
func (f *ProxyFactory) ProxyCreationCode(ctx context.Context) ([]byte, error) {
	data, err := proxyFactoryABI.Pack("proxyCreationCode")
	if err != nil {
		return nil, err
	}

	out, err := callView(ctx, f.provider, proxyFactoryABI, f.address, "proxyCreationCode", data)
	if err != nil {
		return nil, err
	}

	return out[0].([]byte), nil
}

// PredictProxyAddress computes the address createProxyWithNonce will deploy to without sending
// anything.
func (f *ProxyFactory) PredictProxyAddress(ctx context.Context, singleton common.Address, initializer []byte, saltNonce *big.Int) (common.Address, error) {
	creationCode, err := f.ProxyCreationCode(ctx)
	if err != nil {
		return common.Address{}, err
	}

	return PredictProxyAddress(f.address, singleton, initializer, saltNonce, creationCode), nil
}

// CreateProxy submits createProxyWithNonce and returns the proxy address taken from the emitted
// ProxyCreation log.
func (f *ProxyFactory) CreateProxy(
	ctx context.Context,
	singleton common.Address,
	initializer []byte,
	saltNonce *big.Int,
	opts types.TransactionOptions,
) (common.Address, types.TransactionResult, error) {
	data, err := EncodeCreateProxyWithNonce(singleton, initializer, saltNonce)
	if err != nil {
		return common.Address{}, types.TransactionResult{}, err
	}

	result, err := f.provider.SendTransaction(ctx, f.address, new(big.Int), data, opts)
	if err != nil {
		return common.Address{}, types.TransactionResult{}, fmt.Errorf("failed to create proxy: %w", BuildExecutionError(err))
	}

	event, err := ParseProxyCreation(result.Receipt, f.address)
	if err != nil {
		return common.Address{}, result, err
	}

	return event.ProxyAddress(), result, nil
}

// CalculateSalt returns keccak256(keccak256(initializer) ‖ uint256(saltNonce)), the CREATE2 salt
// used by createProxyWithNonce.
func CalculateSalt(initializer []byte, saltNonce *big.Int) common.Hash {
	nonceWord := common.BigToHash(bigOrZero(saltNonce))

	return crypto.Keccak256Hash(crypto.Keccak256(initializer), nonceWord.Bytes())
}

// PredictProxyAddress computes the CREATE2 address of a proxy deployed by factory. The init code
// is the factory's proxy creation code followed by the ABI-encoded singleton address.
func PredictProxyAddress(factory, singleton common.Address, initializer []byte, saltNonce *big.Int, creationCode []byte) common.Address {
	initCode := slices.Concat(creationCode, common.LeftPadBytes(singleton.Bytes(), 32))
	salt := CalculateSalt(initializer, saltNonce)

	return crypto.CreateAddress2(factory, salt, crypto.Keccak256(initCode))
}
