package bindings

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// GnosisSafeProxyFactoryMetaData contains the proxy factory functions shared by versions 1.1.1 to
// 1.3.0. The ProxyCreation event differs per version and lives in the ProxyCreation metadata below.
var GnosisSafeProxyFactoryMetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"createProxyWithNonce","stateMutability":"nonpayable","inputs":[{"name":"_singleton","type":"address"},{"name":"initializer","type":"bytes"},{"name":"saltNonce","type":"uint256"}],"outputs":[{"name":"proxy","type":"address"}]},
{"type":"function","name":"proxyCreationCode","stateMutability":"pure","inputs":[],"outputs":[{"name":"","type":"bytes"}]},
{"type":"function","name":"proxyRuntimeCode","stateMutability":"pure","inputs":[],"outputs":[{"name":"","type":"bytes"}]}
]`,
}

// ProxyCreationV111MetaData is the event emitted by the 1.1.1 factory, which 1.2.0 reuses.
var ProxyCreationV111MetaData = &bind.MetaData{
	ABI: `[{"type":"event","name":"ProxyCreation","anonymous":false,"inputs":[{"name":"proxy","type":"address","indexed":false}]}]`,
}

// ProxyCreationV130MetaData is the event emitted by the 1.3.0 factory.
var ProxyCreationV130MetaData = &bind.MetaData{
	ABI: `[{"type":"event","name":"ProxyCreation","anonymous":false,"inputs":[{"name":"proxy","type":"address","indexed":false},{"name":"singleton","type":"address","indexed":false}]}]`,
}

func GnosisSafeProxyFactoryABI() *abi.ABI {
	return mustABI(GnosisSafeProxyFactoryMetaData)
}

func ProxyCreationV111ABI() *abi.ABI {
	return mustABI(ProxyCreationV111MetaData)
}

func ProxyCreationV130ABI() *abi.ABI {
	return mustABI(ProxyCreationV130MetaData)
}
