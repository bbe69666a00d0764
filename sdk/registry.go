package sdk

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// Registry resolves the address of a Safe singleton contract for a version and chain.
type Registry interface {
	Lookup(version string, chainID uint64, kind types.ContractKind) (common.Address, bool)
}
