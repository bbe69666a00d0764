package safe

import (
	"github.com/polywrap/safe-contracts-wrapper-sub000/registry"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

type options struct {
	version          string
	contractNetworks types.ContractNetworksConfig
	registry         sdk.Registry
	isL1SafeMaster   bool
}

// Option configures a Safe or a SafeFactory.
type Option func(*options)

// WithVersion pins the Safe version instead of reading it from the contract. For a SafeFactory it
// selects the singleton set to deploy with and defaults to registry.DefaultVersion.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

// WithContractNetworks supplies singleton addresses for chains the canonical registry does not
// cover. Ignored when WithRegistry is also given.
func WithContractNetworks(networks types.ContractNetworksConfig) Option {
	return func(o *options) {
		o.contractNetworks = networks
	}
}

// WithRegistry replaces the address registry.
func WithRegistry(r sdk.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithL1SafeMasterCopy makes a SafeFactory deploy proxies of the L1 master copy, which does not emit
// the extra events of the L2 variant.
func WithL1SafeMasterCopy(isL1 bool) Option {
	return func(o *options) {
		o.isL1SafeMaster = isL1
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = registry.New(registry.WithContractNetworks(o.contractNetworks))
	}

	return o
}
