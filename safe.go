// Package safe is a Go SDK for Gnosis Safe multisig wallets. It builds Safe transactions, computes
// their hashes, collects owner signatures off-chain and on-chain, and executes them once the
// threshold is met. SafeFactory deploys new Safe proxies at predictable addresses.
package safe

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/polywrap/safe-contracts-wrapper-sub000/registry"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// Safe is a connection to one deployed Safe through a Provider. The Provider determines the chain
// and the account that signs and submits.
type Safe struct {
	provider  sdk.Provider
	registry  sdk.Registry
	address   common.Address
	version   string
	inspector *evm.Inspector
	owners    *evm.OwnerManager
	modules   *evm.ModuleManager
}

// New connects to the Safe at address. Unless WithVersion is given, the version is read from the
// contract.
func New(ctx context.Context, provider sdk.Provider, address common.Address, opts ...Option) (*Safe, error) {
	o := applyOptions(opts)
	inspector := evm.NewInspector(provider, address)

	version := o.version
	if version == "" {
		var err error
		if version, err = inspector.GetVersion(ctx); err != nil {
			return nil, fmt.Errorf("failed to read Safe version: %w", err)
		}
	}
	if _, err := evm.DomainIncludesChainID(version); err != nil {
		return nil, err
	}
	if normalized, ok := registry.NormalizeVersion(version); ok {
		version = normalized
	}

	return &Safe{
		provider:  provider,
		registry:  o.registry,
		address:   address,
		version:   version,
		inspector: inspector,
		owners:    evm.NewOwnerManager(inspector),
		modules:   evm.NewModuleManager(inspector, version),
	}, nil
}

// Address returns the Safe address.
func (s *Safe) Address() common.Address {
	return s.address
}

// Version returns the Safe contract version.
func (s *Safe) Version() string {
	return s.version
}

// Provider returns the provider the Safe was connected with.
func (s *Safe) Provider() sdk.Provider {
	return s.provider
}

func (s *Safe) GetChainID(ctx context.Context) (*big.Int, error) {
	return s.provider.GetChainID(ctx)
}

// GetNonce returns the nonce the next executed Safe transaction must carry.
func (s *Safe) GetNonce(ctx context.Context) (uint64, error) {
	return s.inspector.GetNonce(ctx)
}

func (s *Safe) GetBalance(ctx context.Context) (*big.Int, error) {
	return s.inspector.GetBalance(ctx)
}

func (s *Safe) GetOwners(ctx context.Context) ([]common.Address, error) {
	return s.inspector.GetOwners(ctx)
}

func (s *Safe) GetThreshold(ctx context.Context) (uint64, error) {
	return s.inspector.GetThreshold(ctx)
}

func (s *Safe) IsOwner(ctx context.Context, address common.Address) (bool, error) {
	return s.inspector.IsOwner(ctx, address)
}

func (s *Safe) GetModules(ctx context.Context) ([]common.Address, error) {
	return s.modules.GetModules(ctx)
}

func (s *Safe) IsModuleEnabled(ctx context.Context, module common.Address) (bool, error) {
	return s.modules.IsModuleEnabled(ctx, module)
}

// EncodeAddOwnerWithThresholdData encodes the self-call adding owner. A nil threshold keeps the
// current one.
func (s *Safe) EncodeAddOwnerWithThresholdData(ctx context.Context, owner common.Address, threshold *uint64) ([]byte, error) {
	return s.owners.EncodeAddOwnerWithThresholdData(ctx, owner, threshold)
}

// EncodeRemoveOwnerData encodes the self-call removing owner. A nil threshold lowers the current
// one by one.
func (s *Safe) EncodeRemoveOwnerData(ctx context.Context, owner common.Address, threshold *uint64) ([]byte, error) {
	return s.owners.EncodeRemoveOwnerData(ctx, owner, threshold)
}

func (s *Safe) EncodeSwapOwnerData(ctx context.Context, oldOwner, newOwner common.Address) ([]byte, error) {
	return s.owners.EncodeSwapOwnerData(ctx, oldOwner, newOwner)
}

func (s *Safe) EncodeChangeThresholdData(ctx context.Context, threshold uint64) ([]byte, error) {
	return s.owners.EncodeChangeThresholdData(ctx, threshold)
}

func (s *Safe) EncodeEnableModuleData(ctx context.Context, module common.Address) ([]byte, error) {
	return s.modules.EncodeEnableModuleData(ctx, module)
}

func (s *Safe) EncodeDisableModuleData(ctx context.Context, module common.Address) ([]byte, error) {
	return s.modules.EncodeDisableModuleData(ctx, module)
}

// CreateAddOwnerTx builds a Safe transaction that adds owner.
func (s *Safe) CreateAddOwnerTx(ctx context.Context, owner common.Address, threshold *uint64, options ...types.SafeTransactionOptionalProps) (*types.SafeTransaction, error) {
	data, err := s.EncodeAddOwnerWithThresholdData(ctx, owner, threshold)
	if err != nil {
		return nil, err
	}

	return s.createSelfCall(ctx, data, options)
}

// CreateRemoveOwnerTx builds a Safe transaction that removes owner.
func (s *Safe) CreateRemoveOwnerTx(ctx context.Context, owner common.Address, threshold *uint64, options ...types.SafeTransactionOptionalProps) (*types.SafeTransaction, error) {
	data, err := s.EncodeRemoveOwnerData(ctx, owner, threshold)
	if err != nil {
		return nil, err
	}

	return s.createSelfCall(ctx, data, options)
}

// CreateSwapOwnerTx builds a Safe transaction that replaces oldOwner with newOwner.
func (s *Safe) CreateSwapOwnerTx(ctx context.Context, oldOwner, newOwner common.Address, options ...types.SafeTransactionOptionalProps) (*types.SafeTransaction, error) {
	data, err := s.EncodeSwapOwnerData(ctx, oldOwner, newOwner)
	if err != nil {
		return nil, err
	}

	return s.createSelfCall(ctx, data, options)
}

// CreateChangeThresholdTx builds a Safe transaction that changes the threshold.
func (s *Safe) CreateChangeThresholdTx(ctx context.Context, threshold uint64, options ...types.SafeTransactionOptionalProps) (*types.SafeTransaction, error) {
	data, err := s.EncodeChangeThresholdData(ctx, threshold)
	if err != nil {
		return nil, err
	}

	return s.createSelfCall(ctx, data, options)
}

// CreateEnableModuleTx builds a Safe transaction that enables module.
func (s *Safe) CreateEnableModuleTx(ctx context.Context, module common.Address, options ...types.SafeTransactionOptionalProps) (*types.SafeTransaction, error) {
	data, err := s.EncodeEnableModuleData(ctx, module)
	if err != nil {
		return nil, err
	}

	return s.createSelfCall(ctx, data, options)
}

// CreateDisableModuleTx builds a Safe transaction that disables module.
func (s *Safe) CreateDisableModuleTx(ctx context.Context, module common.Address, options ...types.SafeTransactionOptionalProps) (*types.SafeTransaction, error) {
	data, err := s.EncodeDisableModuleData(ctx, module)
	if err != nil {
		return nil, err
	}

	return s.createSelfCall(ctx, data, options)
}

func (s *Safe) createSelfCall(ctx context.Context, data []byte, options []types.SafeTransactionOptionalProps) (*types.SafeTransaction, error) {
	return s.CreateTransaction(ctx, types.SafeTransactionDataPartial{
		To:   s.address,
		Data: data,
	}, options...)
}

// resolve looks up a singleton for the Safe's version on the provider's current chain.
func (s *Safe) resolve(ctx context.Context, kind types.ContractKind) (common.Address, error) {
	return resolveContract(ctx, s.provider, s.registry, s.version, kind)
}

// resolveContract is called on every use rather than cached so a provider that switches chains is
// honored.
func resolveContract(ctx context.Context, provider sdk.Provider, reg sdk.Registry, version string, kind types.ContractKind) (common.Address, error) {
	chainID, err := provider.GetChainID(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if !chainID.IsUint64() {
		return common.Address{}, sdkerrors.NewValidationError("chain ID out of range: " + chainID.String())
	}

	addr, ok := reg.Lookup(version, chainID.Uint64(), kind)
	if !ok {
		return common.Address{}, registry.NotFound(version, chainID.Uint64(), kind)
	}

	return addr, nil
}
