package bindings

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// MultiSendMetaData covers both MultiSend and MultiSendCallOnly, which share one entry point.
var MultiSendMetaData = &bind.MetaData{
	ABI: `[{"type":"function","name":"multiSend","stateMutability":"payable","inputs":[{"name":"transactions","type":"bytes"}],"outputs":[]}]`,
}

func MultiSendABI() *abi.ABI {
	return mustABI(MultiSendMetaData)
}
