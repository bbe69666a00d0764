package abi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Encode is the equivalent of Solidity's abi.encode. The argument list is given as the JSON of an
// ABI inputs array, e.g. `[{"type":"bytes32"},{"type":"address"}]`.
func Encode(argsJSON string, values ...any) ([]byte, error) {
	method, err := dummyMethod(fmt.Sprintf(`"inputs": %s`, argsJSON))
	if err != nil {
		return nil, err
	}

	res, err := method.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	// Drop the selector of the dummy method.
	return res[4:], nil
}

// Decode is the equivalent of Solidity's abi.decode.
func Decode(argsJSON string, data []byte) ([]any, error) {
	method, err := dummyMethod(fmt.Sprintf(`"outputs": %s`, argsJSON))
	if err != nil {
		return nil, err
	}

	return method.Unpack("method", data)
}

func dummyMethod(args string) (abi.ABI, error) {
	def := fmt.Sprintf(`[{"name":"method","type":"function",%s}]`, args)

	return abi.JSON(strings.NewReader(def))
}
