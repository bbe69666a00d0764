// Package registry resolves Safe singleton contract addresses by version, chain and kind.
package registry

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
	goversion "github.com/hashicorp/go-version"
	chainsel "github.com/smartcontractkit/chain-selectors"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

var _ sdk.Registry = (*Registry)(nil)

// Registry looks up addresses in caller supplied per-chain overrides first and in the canonical
// deployment tables second. It holds no mutable state, so every lookup re-resolves.
type Registry struct {
	overrides types.ContractNetworksConfig
}

// Option configures a Registry.
type Option func(*Registry)

// WithContractNetworks adds per-chain address overrides. They apply to every Safe version.
func WithContractNetworks(networks types.ContractNetworksConfig) Option {
	return func(r *Registry) {
		r.overrides = networks
	}
}

// New creates a Registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Lookup returns the address of kind for version on chainID.
func (r *Registry) Lookup(version string, chainID uint64, kind types.ContractKind) (common.Address, bool) {
	if network, ok := r.overrides[chainID]; ok {
		if addr, ok := network.Address(kind); ok {
			return addr, true
		}
	}

	v, ok := NormalizeVersion(version)
	if !ok || !slices.Contains(deployedChains[v], chainID) {
		return common.Address{}, false
	}

	addr, ok := deployments[v][kind]

	return addr, ok
}

// Resolve is Lookup returning a ContractNotFoundError that names the chain when the lookup misses.
func (r *Registry) Resolve(version string, chainID uint64, kind types.ContractKind) (common.Address, error) {
	if addr, ok := r.Lookup(version, chainID, kind); ok {
		return addr, nil
	}

	return common.Address{}, NotFound(version, chainID, kind)
}

// NotFound builds the error reported when no address exists for kind.
func NotFound(version string, chainID uint64, kind types.ContractKind) error {
	name, err := chainsel.NameFromChainId(chainID)
	if err != nil {
		name = ""
	}

	return sdkerrors.NewContractNotFoundError(string(kind), version, chainID, name)
}

// NormalizeVersion maps inputs such as "v1.3.0" or "1.3" onto a known version key.
func NormalizeVersion(version string) (string, bool) {
	v, err := goversion.NewVersion(version)
	if err != nil {
		return "", false
	}

	for known := range deployments {
		if goversion.Must(goversion.NewVersion(known)).Equal(v) {
			return known, true
		}
	}

	return "", false
}

// SupportedVersions lists the Safe versions with canonical deployments, newest first.
func SupportedVersions() []string {
	return []string{Version130, Version120, Version111}
}
