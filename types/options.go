package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

// TransactionOptions tune the Ethereum transaction that carries a Safe call. Gas and GasLimit are
// aliases and setting both is an error.
type TransactionOptions struct {
	From                 *common.Address `json:"from,omitempty"`
	Gas                  *uint64         `json:"gas,omitempty"`
	GasLimit             *uint64         `json:"gasLimit,omitempty"`
	GasPrice             *big.Int        `json:"gasPrice,omitempty"`
	MaxFeePerGas         *big.Int        `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *big.Int        `json:"maxPriorityFeePerGas,omitempty"`
	Nonce                *uint64         `json:"nonce,omitempty"`
}

// HasConflictingGas reports whether both Gas and GasLimit are set.
func (o TransactionOptions) HasConflictingGas() bool {
	return o.Gas != nil && o.GasLimit != nil
}

// GasLimitValue returns whichever of Gas or GasLimit is set, or 0 for "estimate".
func (o TransactionOptions) GasLimitValue() uint64 {
	switch {
	case o.GasLimit != nil:
		return *o.GasLimit
	case o.Gas != nil:
		return *o.Gas
	default:
		return 0
	}
}

// TransactionResult is a mined transaction.
type TransactionResult struct {
	Hash    common.Hash        `json:"hash"`
	Receipt *gethtypes.Receipt `json:"receipt"`
}
