package types

import "github.com/ethereum/go-ethereum/common"

// ContractKind names one of the singleton contracts a Safe deployment relies on.
type ContractKind string

const (
	ContractKindProxyFactory      ContractKind = "GnosisSafeProxyFactory"
	ContractKindSafeMasterCopy    ContractKind = "GnosisSafe"
	ContractKindSafeL2MasterCopy  ContractKind = "GnosisSafeL2"
	ContractKindMultiSend         ContractKind = "MultiSend"
	ContractKindMultiSendCallOnly ContractKind = "MultiSendCallOnly"
	ContractKindFallbackHandler   ContractKind = "CompatibilityFallbackHandler"
)

// ContractNetworkConfig holds the singleton addresses for one chain. A zero address means the
// value was not provided and the registry default applies.
type ContractNetworkConfig struct {
	ProxyFactoryAddress      common.Address `json:"proxyFactoryAddress"`
	SafeMasterCopyAddress    common.Address `json:"safeMasterCopyAddress"`
	SafeL2MasterCopyAddress  common.Address `json:"safeL2MasterCopyAddress"`
	MultiSendAddress         common.Address `json:"multiSendAddress"`
	MultiSendCallOnlyAddress common.Address `json:"multiSendCallOnlyAddress"`
	FallbackHandlerAddress   common.Address `json:"fallbackHandlerAddress"`
}

// Address returns the configured address for kind, if set.
func (c ContractNetworkConfig) Address(kind ContractKind) (common.Address, bool) {
	var addr common.Address
	switch kind {
	case ContractKindProxyFactory:
		addr = c.ProxyFactoryAddress
	case ContractKindSafeMasterCopy:
		addr = c.SafeMasterCopyAddress
	case ContractKindSafeL2MasterCopy:
		addr = c.SafeL2MasterCopyAddress
	case ContractKindMultiSend:
		addr = c.MultiSendAddress
	case ContractKindMultiSendCallOnly:
		addr = c.MultiSendCallOnlyAddress
	case ContractKindFallbackHandler:
		addr = c.FallbackHandlerAddress
	}

	return addr, addr != ZeroAddress
}

// ContractNetworksConfig maps an EVM chain ID to caller supplied contract addresses, typically for
// local or private networks that the static registry does not know.
type ContractNetworksConfig map[uint64]ContractNetworkConfig
