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

// SafeFactory deploys Safe proxies for one Safe version through the version's proxy factory.
type SafeFactory struct {
	provider sdk.Provider
	registry sdk.Registry
	version  string
	isL1     bool
}

// NewSafeFactory creates a factory for the provider's chain. It fails when the registry has no
// proxy factory for the version on that chain.
func NewSafeFactory(ctx context.Context, provider sdk.Provider, opts ...Option) (*SafeFactory, error) {
	o := applyOptions(opts)

	version := o.version
	if version == "" {
		version = registry.DefaultVersion
	}
	normalized, ok := registry.NormalizeVersion(version)
	if !ok {
		return nil, sdkerrors.NewUnsupportedVersionError(version)
	}

	f := &SafeFactory{
		provider: provider,
		registry: o.registry,
		version:  normalized,
		isL1:     o.isL1SafeMaster,
	}
	if _, err := f.resolve(ctx, types.ContractKindProxyFactory); err != nil {
		return nil, err
	}

	return f, nil
}

// Version returns the Safe version deployed by the factory.
func (f *SafeFactory) Version() string {
	return f.version
}

// deployment is everything createProxyWithNonce needs for one config.
type deployment struct {
	factory     *evm.ProxyFactory
	singleton   common.Address
	initializer []byte
	saltNonce   *big.Int
}

// PredictSafeAddress returns the address DeploySafe would deploy cfg to. The config is validated
// before any network call.
func (f *SafeFactory) PredictSafeAddress(ctx context.Context, cfg types.SafeDeploymentConfig) (common.Address, error) {
	d, err := f.prepare(ctx, cfg)
	if err != nil {
		return common.Address{}, err
	}

	return d.factory.PredictProxyAddress(ctx, d.singleton, d.initializer, d.saltNonce)
}

// DeploySafe deploys a Safe proxy for cfg and connects to it. The address reported by the
// ProxyCreation log must match the prediction and hold code.
func (f *SafeFactory) DeploySafe(ctx context.Context, cfg types.SafeDeploymentConfig, opts types.TransactionOptions) (*Safe, error) {
	lggr := sdk.LoggerFrom(ctx)

	if opts.HasConflictingGas() {
		return nil, sdkerrors.NewConflictingOptionsError()
	}

	d, err := f.prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}

	predicted, err := d.factory.PredictProxyAddress(ctx, d.singleton, d.initializer, d.saltNonce)
	if err != nil {
		return nil, err
	}

	lggr.Infof("Deploying Safe %s proxy to %s via factory %s", f.version, predicted.Hex(), d.factory.Address().Hex())

	deployed, result, err := d.factory.CreateProxy(ctx, d.singleton, d.initializer, d.saltNonce, opts)
	if err != nil {
		return nil, err
	}
	if deployed != predicted {
		return nil, sdkerrors.NewAddressMismatchError(predicted, deployed)
	}

	hasCode, err := f.provider.IsContractDeployed(ctx, deployed)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", deployed.Hex(), err)
	}
	if !hasCode {
		return nil, fmt.Errorf("SafeProxy contract is not deployed at %s", deployed.Hex())
	}

	lggr.Infof("Safe deployed at %s in transaction %s", deployed.Hex(), result.Hash.Hex())

	return New(ctx, f.provider, deployed, WithVersion(f.version), WithRegistry(f.registry))
}

func (f *SafeFactory) prepare(ctx context.Context, cfg types.SafeDeploymentConfig) (deployment, error) {
	if err := cfg.Validate(); err != nil {
		return deployment{}, err
	}
	saltNonce, err := cfg.SaltNonceValue()
	if err != nil {
		return deployment{}, err
	}

	factoryAddress, err := f.resolve(ctx, types.ContractKindProxyFactory)
	if err != nil {
		return deployment{}, err
	}
	singleton, err := f.singleton(ctx)
	if err != nil {
		return deployment{}, err
	}

	// Chains without a known fallback handler deploy without one.
	fallbackHandler, err := f.resolve(ctx, types.ContractKindFallbackHandler)
	if err != nil {
		fallbackHandler = types.ZeroAddress
	}

	initializer, err := evm.EncodeSetup(cfg.SafeAccountConfig, fallbackHandler)
	if err != nil {
		return deployment{}, err
	}

	return deployment{
		factory:     evm.NewProxyFactory(f.provider, factoryAddress),
		singleton:   singleton,
		initializer: initializer,
		saltNonce:   saltNonce,
	}, nil
}

// singleton picks the L2 master copy where the version has one, unless the L1 copy was requested.
func (f *SafeFactory) singleton(ctx context.Context) (common.Address, error) {
	if !f.isL1 {
		if addr, err := f.resolve(ctx, types.ContractKindSafeL2MasterCopy); err == nil {
			return addr, nil
		}
	}

	return f.resolve(ctx, types.ContractKindSafeMasterCopy)
}

func (f *SafeFactory) resolve(ctx context.Context, kind types.ContractKind) (common.Address, error) {
	return resolveContract(ctx, f.provider, f.registry, f.version, kind)
}
