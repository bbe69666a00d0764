package evm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// hexPattern matches "0x" followed by one or more hex characters
	hexPattern = regexp.MustCompile(`0x[0-9a-fA-F]{8,}`)
	// safeCodePattern matches the short GSxxx revert reasons of the Safe contracts
	safeCodePattern = regexp.MustCompile(`\bGS\d{3}\b`)
)

const revertPrefix = "revert:"

// safeErrorCodes describes the revert reasons the Safe contracts emit since 1.3.0.
var safeErrorCodes = map[string]string{
	"GS000": "Could not finish initialization",
	"GS001": "Threshold needs to be defined",
	"GS010": "Not enough gas to execute Safe transaction",
	"GS011": "Could not pay gas costs with ether",
	"GS012": "Could not pay gas costs with token",
	"GS013": "Safe transaction failed when gasPrice and safeTxGas were 0",
	"GS020": "Signatures data too short",
	"GS021": "Invalid contract signature location: inside static part",
	"GS022": "Invalid contract signature location: length not present",
	"GS023": "Invalid contract signature location: data not complete",
	"GS024": "Invalid contract signature provided",
	"GS025": "Hash has not been approved",
	"GS026": "Invalid owner provided",
	"GS030": "Only owners can approve a hash",
	"GS031": "Method can only be called from this contract",
	"GS100": "Modules have already been initialized",
	"GS101": "Invalid module address provided",
	"GS102": "Module has already been added",
	"GS103": "Invalid prevModule, module pair provided",
	"GS104": "Method can only be called from an enabled module",
	"GS200": "Owners have already been setup",
	"GS201": "Threshold cannot exceed owner count",
	"GS202": "Threshold needs to be greater than 0",
	"GS203": "Invalid owner address provided",
	"GS204": "Address is already an owner",
	"GS205": "Invalid prevOwner, owner pair provided",
	"GS300": "Guard does not implement IERC165",
}

// ExecutionError is a reverted Safe call whose revert reason could be recovered from the node's
// error message.
type ExecutionError struct {
	// RawRevertData is the ABI encoded revert payload when the node returned one.
	RawRevertData []byte
	// RevertReason is the decoded reason string, e.g. "GS013".
	RevertReason string
	// Description explains a Safe GSxxx code. Empty for other reasons.
	Description string
	// OriginalError is the error returned by the provider
	OriginalError error
}

func (e *ExecutionError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%v (%s: %s)", e.OriginalError, e.RevertReason, e.Description)
	}

	return fmt.Sprintf("%v (revert reason: %s)", e.OriginalError, e.RevertReason)
}

func (e *ExecutionError) Unwrap() error {
	return e.OriginalError
}

// BuildExecutionError wraps err in an ExecutionError when a revert reason can be recovered from it
// and returns err unchanged otherwise.
func BuildExecutionError(err error) error {
	if err == nil {
		return nil
	}

	raw, reason := extractRevertReason(err.Error())
	if reason == "" {
		return err
	}

	execErr := &ExecutionError{
		RawRevertData: raw,
		RevertReason:  reason,
		OriginalError: err,
	}
	if code := safeCodePattern.FindString(reason); code != "" {
		execErr.RevertReason = code
		execErr.Description = safeErrorCodes[code]
	}

	return execErr
}

// extractRevertReason recovers the revert reason from an error string. Nodes report reverts as
// "execution reverted: <reason>", as "revert: <reason>" or as hex encoded Error(string) data.
func extractRevertReason(errStr string) ([]byte, string) {
	if idx := strings.Index(errStr, revertPrefix); idx != -1 {
		if reason := strings.TrimSpace(errStr[idx+len(revertPrefix):]); reason != "" {
			return nil, reason
		}
	}

	for _, hexStr := range hexPattern.FindAllString(errStr, -1) {
		data := common.FromHex(hexStr)
		if reason, err := abi.UnpackRevert(data); err == nil {
			return data, reason
		}
	}

	if code := safeCodePattern.FindString(errStr); code != "" {
		return nil, code
	}

	return nil, ""
}
