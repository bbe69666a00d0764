package types

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ZeroAddress is the default for gasToken and refundReceiver.
	ZeroAddress = common.Address{}

	// SentinelAddress is the head of the Safe owner and module linked lists.
	SentinelAddress = common.HexToAddress("0x0000000000000000000000000000000000000001")
)

// NormalizeAddress returns the canonical map key for an address: lower-case 0x-prefixed hex.
// Every signer-keyed map goes through this function on insert and on lookup.
func NormalizeAddress(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// NormalizeHexAddress is NormalizeAddress for addresses still in string form. It accepts any
// casing and an optional 0x prefix.
func NormalizeHexAddress(addr string) string {
	return NormalizeAddress(common.HexToAddress(addr))
}

// IsRestrictedAddress reports whether addr may never be an owner or a module.
func IsRestrictedAddress(addr common.Address) bool {
	return addr == ZeroAddress || addr == SentinelAddress
}

// CompareAddresses orders addresses the way the Safe contract requires signatures to be sorted:
// ascending by numeric value, which equals case-insensitive hex order.
func CompareAddresses(a, b common.Address) int {
	return strings.Compare(NormalizeAddress(a), NormalizeAddress(b))
}
