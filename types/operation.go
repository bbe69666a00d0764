package types

import (
	"encoding/json"
	"fmt"
)

// OperationType selects how a Safe forwards a transaction to its target.
type OperationType uint8

const (
	// Call is a regular message call.
	Call OperationType = 0

	// DelegateCall runs the target's code in the Safe's context. MultiSend batches use it.
	DelegateCall OperationType = 1
)

func (o OperationType) String() string {
	switch o {
	case Call:
		return "call"
	case DelegateCall:
		return "delegatecall"
	default:
		return fmt.Sprintf("operation(%d)", uint8(o))
	}
}

// Valid reports whether o is one of the two operations the Safe contract accepts.
func (o OperationType) Valid() bool {
	return o == Call || o == DelegateCall
}

// UnmarshalJSON accepts the numeric form used by the Safe transaction service.
func (o *OperationType) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid operation: %w", err)
	}

	op := OperationType(n)
	if !op.Valid() {
		return fmt.Errorf("invalid operation: %d", n)
	}
	*o = op

	return nil
}
