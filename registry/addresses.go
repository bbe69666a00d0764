package registry

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

const (
	Version111 = "1.1.1"
	Version120 = "1.2.0"
	Version130 = "1.3.0"

	// DefaultVersion is used when a caller does not pin a Safe version.
	DefaultVersion = Version130
)

// Canonical singleton deployments. Safe 1.2.0 only shipped a new master copy and reuses the 1.1.1
// factory, MultiSend and fallback handler. MultiSendCallOnly and the L2 master copy first
// appeared in 1.3.0.
var deployments = map[string]map[types.ContractKind]common.Address{
	Version130: {
		types.ContractKindProxyFactory:      common.HexToAddress("0xa6B71E26C5e0845f74c812102Ca7114b6a896AB2"),
		types.ContractKindSafeMasterCopy:    common.HexToAddress("0xd9Db270c1B5E3Bd161E8c8503c55cEABeE709552"),
		types.ContractKindSafeL2MasterCopy:  common.HexToAddress("0x3E5c63644E683549055b9Be8653de26E0B4CD36E"),
		types.ContractKindMultiSend:         common.HexToAddress("0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761"),
		types.ContractKindMultiSendCallOnly: common.HexToAddress("0x40A2aCCbd92BCA938b02010E17A5b8929b49130D"),
		types.ContractKindFallbackHandler:   common.HexToAddress("0xf48f2B2d2a534e402487b3ee7C18c33Aec0Fe5e4"),
	},
	Version120: {
		types.ContractKindProxyFactory:    common.HexToAddress("0x76E2cFc1F5Fa8F6a5b3fC4c8F4788F0116861F9B"),
		types.ContractKindSafeMasterCopy:  common.HexToAddress("0x6851D6fDFAfD08c0295C392436245E5bc78B0185"),
		types.ContractKindMultiSend:       common.HexToAddress("0x8D29bE29923b68abfDD21e541b9374737B49cdAD"),
		types.ContractKindFallbackHandler: common.HexToAddress("0xd5D82B6aDDc9027B22dCA772Aa68D5d74cdBdF44"),
	},
	Version111: {
		types.ContractKindProxyFactory:    common.HexToAddress("0x76E2cFc1F5Fa8F6a5b3fC4c8F4788F0116861F9B"),
		types.ContractKindSafeMasterCopy:  common.HexToAddress("0x34CfAC646f301356fAa8B21e94227e3583Fe3F5F"),
		types.ContractKindMultiSend:       common.HexToAddress("0x8D29bE29923b68abfDD21e541b9374737B49cdAD"),
		types.ContractKindFallbackHandler: common.HexToAddress("0xd5D82B6aDDc9027B22dCA772Aa68D5d74cdBdF44"),
	},
}

// Chains on which each version was deployed at the canonical addresses.
var deployedChains = map[string][]uint64{
	Version130: {
		1,        // ethereum mainnet
		5,        // goerli
		10,       // optimism
		56,       // bsc
		100,      // gnosis
		137,      // polygon
		8453,     // base
		42161,    // arbitrum one
		43114,    // avalanche c-chain
		11155111, // sepolia
	},
	Version120: {1, 4, 5, 42, 100},
	Version111: {1, 4, 5, 42, 100},
}
