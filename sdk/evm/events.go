package evm

import (
	"fmt"
	"math/big"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm/bindings"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
)

// ProxyCreationEvent is a decoded ProxyCreation log. The factory event changed shape between
// versions, so each schema has its own variant.
type ProxyCreationEvent interface {
	ProxyAddress() common.Address
	isProxyCreationEvent()
}

// ProxyCreationV111Event is ProxyCreation(address proxy), emitted by the 1.1.1 and 1.2.0
// factory.
type ProxyCreationV111Event struct {
	Proxy common.Address
}

func (e ProxyCreationV111Event) ProxyAddress() common.Address { return e.Proxy }
func (ProxyCreationV111Event) isProxyCreationEvent()          {}

// ProxyCreationV130Event is ProxyCreation(address proxy, address singleton), emitted by the
// 1.3.0 factory.
type ProxyCreationV130Event struct {
	Proxy     common.Address
	Singleton common.Address
}

func (e ProxyCreationV130Event) ProxyAddress() common.Address { return e.Proxy }
func (ProxyCreationV130Event) isProxyCreationEvent()          {}

type proxyCreationDecoder func(log *gethtypes.Log) (ProxyCreationEvent, error)

var (
	proxyCreationV111Event = bindings.ProxyCreationV111ABI().Events["ProxyCreation"]
	proxyCreationV130Event = bindings.ProxyCreationV130ABI().Events["ProxyCreation"]

	// proxyCreationDecoders dispatches on topic[0], the event signature hash.
	proxyCreationDecoders = map[common.Hash]proxyCreationDecoder{
		proxyCreationV111Event.ID: func(log *gethtypes.Log) (ProxyCreationEvent, error) {
			out, err := unpackEvent(proxyCreationV111Event, log)
			if err != nil {
				return nil, err
			}

			return ProxyCreationV111Event{Proxy: out[0].(common.Address)}, nil
		},
		proxyCreationV130Event.ID: func(log *gethtypes.Log) (ProxyCreationEvent, error) {
			out, err := unpackEvent(proxyCreationV130Event, log)
			if err != nil {
				return nil, err
			}

			return ProxyCreationV130Event{
				Proxy:     out[0].(common.Address),
				Singleton: out[1].(common.Address),
			}, nil
		},
	}
)

// ParseProxyCreation returns the first ProxyCreation event in the receipt emitted by factory,
// whichever schema it uses.
func ParseProxyCreation(receipt *gethtypes.Receipt, factory common.Address) (ProxyCreationEvent, error) {
	if receipt == nil {
		return nil, sdkerrors.NewProxyCreationEventNotFoundError(common.Hash{})
	}

	for _, log := range receipt.Logs {
		if log.Address != factory || len(log.Topics) == 0 {
			continue
		}

		decode, ok := proxyCreationDecoders[log.Topics[0]]
		if !ok {
			continue
		}

		event, err := decode(log)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ProxyCreation log: %w", err)
		}

		return event, nil
	}

	return nil, sdkerrors.NewProxyCreationEventNotFoundError(receipt.TxHash)
}

// ExecutionResult is the outcome a Safe reports for an execTransaction call.
type ExecutionResult struct {
	SafeTxHash common.Hash
	Payment    *big.Int
	Success    bool
}

var (
	executionSuccessEvent = safeABI.Events["ExecutionSuccess"]
	executionFailureEvent = safeABI.Events["ExecutionFailure"]
)

// ParseExecutionResult finds the ExecutionSuccess or ExecutionFailure log emitted by safe. A log
// with a known topic that cannot be decoded is an error.
func ParseExecutionResult(receipt *gethtypes.Receipt, safe common.Address) (ExecutionResult, bool, error) {
	if receipt == nil {
		return ExecutionResult{}, false, nil
	}

	for _, log := range receipt.Logs {
		if log.Address != safe || len(log.Topics) == 0 {
			continue
		}

		var event gethabi.Event
		switch log.Topics[0] {
		case executionSuccessEvent.ID:
			event = executionSuccessEvent
		case executionFailureEvent.ID:
			event = executionFailureEvent
		default:
			continue
		}

		out, err := unpackEvent(event, log)
		if err != nil {
			return ExecutionResult{}, false, fmt.Errorf("failed to decode %s log in tx %s: %w", event.Name, log.TxHash.Hex(), err)
		}

		return ExecutionResult{
			SafeTxHash: common.Hash(out[0].([32]byte)),
			Payment:    out[1].(*big.Int),
			Success:    event.ID == executionSuccessEvent.ID,
		}, true, nil
	}

	return ExecutionResult{}, false, nil
}

func unpackEvent(event gethabi.Event, log *gethtypes.Log) ([]any, error) {
	return event.Inputs.NonIndexed().Unpack(log.Data)
}
