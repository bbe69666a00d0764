package sdkerrors

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Error categories. Every typed error in this package unwraps to exactly one of them so callers
// can branch with errors.Is without knowing the concrete type.
var (
	// ErrValidation marks input that was rejected before any network call was made.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized marks a signer or approver that is not a current Safe owner.
	ErrUnauthorized = errors.New("authorization error")

	// ErrState marks a transaction that cannot be executed in the current on-chain state.
	ErrState = errors.New("state error")

	// ErrNotFound marks an expected contract, address or event that could not be located.
	ErrNotFound = errors.New("not found")
)

// ValidationError is returned when an argument fails a local check.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// EmptyBatchError is returned when a MultiSend batch is built from zero transactions.
type EmptyBatchError struct{}

func (e *EmptyBatchError) Error() string {
	return "invalid empty array of transactions"
}

func (e *EmptyBatchError) Unwrap() error {
	return ErrValidation
}

// NewEmptyBatchError creates a new EmptyBatchError.
func NewEmptyBatchError() *EmptyBatchError {
	return &EmptyBatchError{}
}

// InvalidSaltNonceError is returned when a deployment salt nonce is negative or not a number.
type InvalidSaltNonceError struct {
	SaltNonce string
}

func (e *InvalidSaltNonceError) Error() string {
	return fmt.Sprintf("saltNonce must be greater than or equal to 0, got %q", e.SaltNonce)
}

func (e *InvalidSaltNonceError) Unwrap() error {
	return ErrValidation
}

// NewInvalidSaltNonceError creates a new InvalidSaltNonceError.
func NewInvalidSaltNonceError(saltNonce string) *InvalidSaltNonceError {
	return &InvalidSaltNonceError{SaltNonce: saltNonce}
}

// InvalidSignatureError is returned when a signature has an unexpected length or recovery byte.
type InvalidSignatureError struct {
	Reason string
}

func (e *InvalidSignatureError) Error() string {
	return "invalid signature: " + e.Reason
}

func (e *InvalidSignatureError) Unwrap() error {
	return ErrValidation
}

// NewInvalidSignatureError creates a new InvalidSignatureError.
func NewInvalidSignatureError(reason string) *InvalidSignatureError {
	return &InvalidSignatureError{Reason: reason}
}

// UnsupportedVersionError is returned for Safe versions this SDK cannot speak to.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return "unsupported Safe version: " + e.Version
}

func (e *UnsupportedVersionError) Unwrap() error {
	return ErrValidation
}

// NewUnsupportedVersionError creates a new UnsupportedVersionError.
func NewUnsupportedVersionError(version string) *UnsupportedVersionError {
	return &UnsupportedVersionError{Version: version}
}

// NotOwnerError is returned when the connected signer is not an owner of the Safe.
type NotOwnerError struct {
	Address common.Address
	Action  string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("%s can only be %s by Safe owners: %s is not an owner", e.subject(), e.Action, e.Address.Hex())
}

func (e *NotOwnerError) subject() string {
	if e.Action == ActionApproved {
		return "transaction hashes"
	}

	return "transactions"
}

func (e *NotOwnerError) Unwrap() error {
	return ErrUnauthorized
}

// Actions reported by NotOwnerError.
const (
	ActionSigned   = "signed"
	ActionApproved = "approved"
)

// NewNotOwnerError creates a new NotOwnerError.
func NewNotOwnerError(address common.Address, action string) *NotOwnerError {
	return &NotOwnerError{Address: address, Action: action}
}

// InsufficientSignaturesError is returned when fewer signatures than the Safe threshold were
// collected.
type InsufficientSignaturesError struct {
	Threshold uint64
	Collected uint64
}

// Missing returns how many signatures are still needed to reach the threshold.
func (e *InsufficientSignaturesError) Missing() uint64 {
	if e.Collected >= e.Threshold {
		return 0
	}

	return e.Threshold - e.Collected
}

func (e *InsufficientSignaturesError) Error() string {
	missing := e.Missing()
	if missing == 1 {
		return "there is 1 signature missing"
	}

	return fmt.Sprintf("there are %d signatures missing", missing)
}

func (e *InsufficientSignaturesError) Unwrap() error {
	return ErrState
}

// NewInsufficientSignaturesError creates a new InsufficientSignaturesError.
func NewInsufficientSignaturesError(threshold, collected uint64) *InsufficientSignaturesError {
	return &InsufficientSignaturesError{Threshold: threshold, Collected: collected}
}

// InsufficientFundsError is returned when the Safe holds less ether than the transaction sends.
type InsufficientFundsError struct {
	Value   *big.Int
	Balance *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough Ether funds: transaction value %s exceeds Safe balance %s", e.Value, e.Balance)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrState
}

// NewInsufficientFundsError creates a new InsufficientFundsError.
func NewInsufficientFundsError(value, balance *big.Int) *InsufficientFundsError {
	return &InsufficientFundsError{Value: value, Balance: balance}
}

// ConflictingOptionsError is returned when both gas and gasLimit are set on transaction options.
type ConflictingOptionsError struct{}

func (e *ConflictingOptionsError) Error() string {
	return "cannot specify gas and gasLimit together in transaction options"
}

func (e *ConflictingOptionsError) Unwrap() error {
	return ErrState
}

// NewConflictingOptionsError creates a new ConflictingOptionsError.
func NewConflictingOptionsError() *ConflictingOptionsError {
	return &ConflictingOptionsError{}
}

// ProxyCreationEventNotFoundError is returned when a factory transaction receipt carries no
// recognised ProxyCreation log.
type ProxyCreationEventNotFoundError struct {
	TxHash common.Hash
}

func (e *ProxyCreationEventNotFoundError) Error() string {
	return fmt.Sprintf("SafeProxy was not deployed correctly: no ProxyCreation event in transaction %s", e.TxHash.Hex())
}

func (e *ProxyCreationEventNotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewProxyCreationEventNotFoundError creates a new ProxyCreationEventNotFoundError.
func NewProxyCreationEventNotFoundError(txHash common.Hash) *ProxyCreationEventNotFoundError {
	return &ProxyCreationEventNotFoundError{TxHash: txHash}
}

// ContractNotFoundError is returned when no address is known for a contract kind on a chain.
type ContractNotFoundError struct {
	Kind      string
	Version   string
	ChainID   uint64
	ChainName string
}

func (e *ContractNotFoundError) Error() string {
	chain := fmt.Sprintf("%d", e.ChainID)
	if e.ChainName != "" {
		chain = fmt.Sprintf("%d (%s)", e.ChainID, e.ChainName)
	}

	return fmt.Sprintf("no %s contract for Safe %s on chain %s", e.Kind, e.Version, chain)
}

func (e *ContractNotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewContractNotFoundError creates a new ContractNotFoundError.
func NewContractNotFoundError(kind, version string, chainID uint64, chainName string) *ContractNotFoundError {
	return &ContractNotFoundError{Kind: kind, Version: version, ChainID: chainID, ChainName: chainName}
}

// ExecutionFailureError is returned when execTransaction was mined but the Safe reported that its
// inner call failed. Safes before 1.3.0 signal this with an ExecutionFailure event instead of
// reverting.
type ExecutionFailureError struct {
	SafeTxHash common.Hash
	TxHash     common.Hash
}

func (e *ExecutionFailureError) Error() string {
	return fmt.Sprintf("Safe transaction %s failed in transaction %s", e.SafeTxHash.Hex(), e.TxHash.Hex())
}

func (e *ExecutionFailureError) Unwrap() error {
	return ErrState
}

// NewExecutionFailureError creates a new ExecutionFailureError.
func NewExecutionFailureError(safeTxHash, txHash common.Hash) *ExecutionFailureError {
	return &ExecutionFailureError{SafeTxHash: safeTxHash, TxHash: txHash}
}

// AddressMismatchError is returned when a deployed proxy address differs from the prediction.
type AddressMismatchError struct {
	Predicted common.Address
	Deployed  common.Address
}

func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("deployed Safe address %s does not match predicted address %s", e.Deployed.Hex(), e.Predicted.Hex())
}

func (e *AddressMismatchError) Unwrap() error {
	return ErrState
}

// NewAddressMismatchError creates a new AddressMismatchError.
func NewAddressMismatchError(predicted, deployed common.Address) *AddressMismatchError {
	return &AddressMismatchError{Predicted: predicted, Deployed: deployed}
}
