// Package bindings holds the ABI metadata of the Safe contracts this module talks to. Only the
// functions and events used by the SDK are included.
package bindings

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// GnosisSafeMetaData contains the Safe master copy ABI shared by versions 1.1.1 to 1.3.0.
var GnosisSafeMetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"VERSION","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
{"type":"function","name":"nonce","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"domainSeparator","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bytes32"}]},
{"type":"function","name":"getOwners","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
{"type":"function","name":"getThreshold","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"isOwner","stateMutability":"view","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"getModules","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
{"type":"function","name":"getModulesPaginated","stateMutability":"view","inputs":[{"name":"start","type":"address"},{"name":"pageSize","type":"uint256"}],"outputs":[{"name":"array","type":"address[]"},{"name":"next","type":"address"}]},
{"type":"function","name":"isModuleEnabled","stateMutability":"view","inputs":[{"name":"module","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
{"type":"function","name":"approvedHashes","stateMutability":"view","inputs":[{"name":"","type":"address"},{"name":"","type":"bytes32"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getTransactionHash","stateMutability":"view","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"},{"name":"safeTxGas","type":"uint256"},{"name":"baseGas","type":"uint256"},{"name":"gasPrice","type":"uint256"},{"name":"gasToken","type":"address"},{"name":"refundReceiver","type":"address"},{"name":"_nonce","type":"uint256"}],"outputs":[{"name":"","type":"bytes32"}]},
{"type":"function","name":"setup","stateMutability":"nonpayable","inputs":[{"name":"_owners","type":"address[]"},{"name":"_threshold","type":"uint256"},{"name":"to","type":"address"},{"name":"data","type":"bytes"},{"name":"fallbackHandler","type":"address"},{"name":"paymentToken","type":"address"},{"name":"payment","type":"uint256"},{"name":"paymentReceiver","type":"address"}],"outputs":[]},
{"type":"function","name":"execTransaction","stateMutability":"payable","inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"},{"name":"operation","type":"uint8"},{"name":"safeTxGas","type":"uint256"},{"name":"baseGas","type":"uint256"},{"name":"gasPrice","type":"uint256"},{"name":"gasToken","type":"address"},{"name":"refundReceiver","type":"address"},{"name":"signatures","type":"bytes"}],"outputs":[{"name":"success","type":"bool"}]},
{"type":"function","name":"approveHash","stateMutability":"nonpayable","inputs":[{"name":"hashToApprove","type":"bytes32"}],"outputs":[]},
{"type":"function","name":"addOwnerWithThreshold","stateMutability":"nonpayable","inputs":[{"name":"owner","type":"address"},{"name":"_threshold","type":"uint256"}],"outputs":[]},
{"type":"function","name":"removeOwner","stateMutability":"nonpayable","inputs":[{"name":"prevOwner","type":"address"},{"name":"owner","type":"address"},{"name":"_threshold","type":"uint256"}],"outputs":[]},
{"type":"function","name":"swapOwner","stateMutability":"nonpayable","inputs":[{"name":"prevOwner","type":"address"},{"name":"oldOwner","type":"address"},{"name":"newOwner","type":"address"}],"outputs":[]},
{"type":"function","name":"changeThreshold","stateMutability":"nonpayable","inputs":[{"name":"_threshold","type":"uint256"}],"outputs":[]},
{"type":"function","name":"enableModule","stateMutability":"nonpayable","inputs":[{"name":"module","type":"address"}],"outputs":[]},
{"type":"function","name":"disableModule","stateMutability":"nonpayable","inputs":[{"name":"prevModule","type":"address"},{"name":"module","type":"address"}],"outputs":[]},
{"type":"event","name":"ApproveHash","anonymous":false,"inputs":[{"name":"approvedHash","type":"bytes32","indexed":true},{"name":"owner","type":"address","indexed":true}]},
{"type":"event","name":"ExecutionSuccess","anonymous":false,"inputs":[{"name":"txHash","type":"bytes32","indexed":false},{"name":"payment","type":"uint256","indexed":false}]},
{"type":"event","name":"ExecutionFailure","anonymous":false,"inputs":[{"name":"txHash","type":"bytes32","indexed":false},{"name":"payment","type":"uint256","indexed":false}]}
]`,
}

// GnosisSafeABI returns the parsed Safe ABI. It panics if the embedded JSON is malformed.
func GnosisSafeABI() *abi.ABI {
	return mustABI(GnosisSafeMetaData)
}

func mustABI(md *bind.MetaData) *abi.ABI {
	parsed, err := md.GetAbi()
	if err != nil {
		panic(err)
	}

	return parsed
}
