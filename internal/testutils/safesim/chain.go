// Package safesim implements an in-memory EVM chain that hosts Safe, proxy factory and MultiSend
// contracts. It re-implements the parts of the contracts the SDK relies on (hash derivation,
// signature checks, owner and module lists, CREATE2 proxy deployment and event logs) so the SDK can
// be tested end to end without compiled bytecode.
package safesim

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"maps"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

const (
	// DefaultChainID is the chain ID used by NewChain. It matches Ethereum mainnet so the canonical
	// registry addresses resolve without overrides.
	DefaultChainID = 1

	// DefaultBalance is the ether balance given to new accounts.
	DefaultBalance = 1e18

	// DefaultGasEstimate is returned by EstimateGas for every call.
	DefaultGasEstimate = 60000
)

// RevertError is returned when a simulated call or transaction reverts.
type RevertError struct {
	Reason string
}

func (e *RevertError) Error() string {
	return "execution reverted: " + e.Reason
}

func revert(format string, args ...any) error {
	return &RevertError{Reason: fmt.Sprintf(format, args...)}
}

// Chain is the simulated chain state. It is safe for concurrent use.
type Chain struct {
	mu sync.Mutex

	chainID  *big.Int
	txCount  uint64
	balances map[common.Address]*big.Int

	safes        map[common.Address]*safeContract
	masterCopies map[common.Address]string
	factories    map[common.Address]*factoryContract
	multiSends   map[common.Address]bool // value: call-only
	handlers     map[common.Address]bool
}

// NewChain creates an empty chain with DefaultChainID.
func NewChain() *Chain {
	return NewChainWithID(DefaultChainID)
}

// NewChainWithID creates an empty chain with the given chain ID.
func NewChainWithID(chainID uint64) *Chain {
	return &Chain{
		chainID:      new(big.Int).SetUint64(chainID),
		balances:     make(map[common.Address]*big.Int),
		safes:        make(map[common.Address]*safeContract),
		masterCopies: make(map[common.Address]string),
		factories:    make(map[common.Address]*factoryContract),
		multiSends:   make(map[common.Address]bool),
		handlers:     make(map[common.Address]bool),
	}
}

// ChainID returns the chain ID.
func (c *Chain) ChainID() uint64 {
	return c.chainID.Uint64()
}

// Fund adds amount wei to addr.
func (c *Chain) Fund(addr common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.credit(addr, amount)
}

// Balance returns the balance of addr.
func (c *Chain) Balance(addr common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return new(big.Int).Set(c.balanceOf(addr))
}

// NewAccount creates a funded account with a fresh key and returns a Provider connected as it.
func (c *Chain) NewAccount() *Account {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}

	account := c.Connect(key)
	c.Fund(account.Address(), big.NewInt(DefaultBalance))

	return account
}

// Connect returns a Provider that signs and sends as key.
func (c *Chain) Connect(key *ecdsa.PrivateKey) *Account {
	return &Account{chain: c, key: key}
}

// snapshot captures everything a failed inner call must roll back.
type snapshot struct {
	balances map[common.Address]*big.Int
	safes    map[common.Address]*safeContract
}

func (c *Chain) snapshot() snapshot {
	s := snapshot{
		balances: make(map[common.Address]*big.Int, len(c.balances)),
		safes:    make(map[common.Address]*safeContract, len(c.safes)),
	}
	for addr, bal := range c.balances {
		s.balances[addr] = new(big.Int).Set(bal)
	}
	for addr, safe := range c.safes {
		s.safes[addr] = safe.clone()
	}

	return s
}

func (c *Chain) restore(s snapshot) {
	c.balances = s.balances
	c.safes = s.safes
}

func (c *Chain) balanceOf(addr common.Address) *big.Int {
	if bal, ok := c.balances[addr]; ok {
		return bal
	}

	return new(big.Int)
}

func (c *Chain) credit(addr common.Address, amount *big.Int) {
	c.balances[addr] = new(big.Int).Add(c.balanceOf(addr), amount)
}

func (c *Chain) transfer(from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if c.balanceOf(from).Cmp(amount) < 0 {
		return revert("insufficient balance for transfer")
	}
	c.balances[from] = new(big.Int).Sub(c.balanceOf(from), amount)
	c.credit(to, amount)

	return nil
}

func (c *Chain) hasCode(addr common.Address) bool {
	_, safe := c.safes[addr]
	_, master := c.masterCopies[addr]
	_, factory := c.factories[addr]
	_, multiSend := c.multiSends[addr]
	_, handler := c.handlers[addr]

	return safe || master || factory || multiSend || handler
}

func (c *Chain) nextTxHash(from common.Address) common.Hash {
	c.txCount++

	return crypto.Keccak256Hash(from.Bytes(), new(big.Int).SetUint64(c.txCount).Bytes())
}

var _ sdk.Provider = (*Account)(nil)

// Account is a sdk.Provider connected to a Chain as one externally owned account.
type Account struct {
	chain *Chain
	key   *ecdsa.PrivateKey

	mu          sync.Mutex
	lastOptions *types.TransactionOptions
	sent        int
}

// Address returns the account address.
func (a *Account) Address() common.Address {
	return crypto.PubkeyToAddress(a.key.PublicKey)
}

// Key returns the account private key.
func (a *Account) Key() *ecdsa.PrivateKey {
	return a.key
}

// LastOptions returns the options passed to the most recent SendTransaction.
func (a *Account) LastOptions() (types.TransactionOptions, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lastOptions == nil {
		return types.TransactionOptions{}, false
	}

	return *a.lastOptions, true
}

// SentTransactions returns how many transactions this account submitted.
func (a *Account) SentTransactions() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.sent
}

func (a *Account) CallContract(_ context.Context, to common.Address, data []byte) ([]byte, error) {
	a.chain.mu.Lock()
	defer a.chain.mu.Unlock()

	if safe, ok := a.chain.safes[to]; ok {
		return a.chain.callSafe(safe, data)
	}
	if factory, ok := a.chain.factories[to]; ok {
		return factory.call(data)
	}

	return nil, revert("no contract at %s", to.Hex())
}

func (a *Account) SendTransaction(
	_ context.Context,
	to common.Address,
	value *big.Int,
	data []byte,
	opts types.TransactionOptions,
) (types.TransactionResult, error) {
	a.mu.Lock()
	a.lastOptions = &opts
	a.sent++
	a.mu.Unlock()

	c := a.chain
	c.mu.Lock()
	defer c.mu.Unlock()

	from := a.Address()
	hash := c.nextTxHash(from)
	receipt := &gethtypes.Receipt{TxHash: hash, Status: gethtypes.ReceiptStatusSuccessful}
	result := types.TransactionResult{Hash: hash, Receipt: receipt}

	snap := c.snapshot()
	logs, err := c.send(from, to, value, data)
	if err != nil {
		c.restore(snap)
		receipt.Status = gethtypes.ReceiptStatusFailed

		return result, err
	}

	for i, log := range logs {
		log.TxHash = hash
		log.Index = uint(i)
	}
	receipt.Logs = logs

	return result, nil
}

func (c *Chain) send(from, to common.Address, value *big.Int, data []byte) ([]*gethtypes.Log, error) {
	if err := c.transfer(from, to, value); err != nil {
		return nil, err
	}

	if safe, ok := c.safes[to]; ok {
		if len(data) == 0 {
			return nil, nil
		}

		return c.transactSafe(safe, from, data)
	}
	if factory, ok := c.factories[to]; ok {
		return c.transactFactory(factory, data)
	}
	if len(data) > 0 && c.hasCode(to) {
		return nil, revert("unsupported call to %s", to.Hex())
	}

	return nil, nil
}

func (a *Account) EstimateGas(_ context.Context, _, _ common.Address, _ *big.Int, _ []byte) (uint64, error) {
	return DefaultGasEstimate, nil
}

func (a *Account) GetBalance(_ context.Context, address common.Address) (*big.Int, error) {
	return a.chain.Balance(address), nil
}

func (a *Account) GetChainID(_ context.Context) (*big.Int, error) {
	return new(big.Int).Set(a.chain.chainID), nil
}

func (a *Account) IsContractDeployed(_ context.Context, address common.Address) (bool, error) {
	a.chain.mu.Lock()
	defer a.chain.mu.Unlock()

	return a.chain.hasCode(address), nil
}

// SignMessage behaves like a node's eth_sign: EIP-191 prefix and v in 27/28 form.
func (a *Account) SignMessage(_ context.Context, message []byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), a.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += types.SignatureVOffset

	return sig, nil
}

// SignTypedData behaves like eth_signTypedData_v4: v in 27/28 form.
func (a *Account) SignTypedData(_ context.Context, data apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(data)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(hash, a.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += types.SignatureVOffset

	return sig, nil
}

func (a *Account) GetSignerAddress(_ context.Context) (common.Address, error) {
	return a.Address(), nil
}

func cloneApprovals(in map[common.Address]map[common.Hash]bool) map[common.Address]map[common.Hash]bool {
	out := make(map[common.Address]map[common.Hash]bool, len(in))
	for owner, hashes := range in {
		out[owner] = maps.Clone(hashes)
	}

	return out
}
