package safesim

import (
	"bytes"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	goversion "github.com/hashicorp/go-version"

	"github.com/polywrap/safe-contracts-wrapper-sub000/internal/utils/abi"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm/bindings"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

var (
	safeABI = bindings.GnosisSafeABI()

	domainTypehash       = crypto.Keccak256Hash([]byte("EIP712Domain(uint256 chainId,address verifyingContract)"))
	legacyDomainTypehash = crypto.Keccak256Hash([]byte("EIP712Domain(address verifyingContract)"))
	safeTxTypehash       = crypto.Keccak256Hash([]byte(
		"SafeTx(address to,uint256 value,bytes data,uint8 operation,uint256 safeTxGas,uint256 baseGas," +
			"uint256 gasPrice,address gasToken,address refundReceiver,uint256 nonce)",
	))

	v130 = goversion.Must(goversion.NewVersion("1.3.0"))
)

// safeContract is the storage of one Safe proxy.
type safeContract struct {
	address         common.Address
	version         string
	owners          []common.Address
	threshold       uint64
	nonce           uint64
	modules         []common.Address
	fallbackHandler common.Address
	approved        map[common.Address]map[common.Hash]bool
}

func (s *safeContract) clone() *safeContract {
	out := *s
	out.owners = slices.Clone(s.owners)
	out.modules = slices.Clone(s.modules)
	out.approved = cloneApprovals(s.approved)

	return &out
}

func (s *safeContract) atLeast130() bool {
	return goversion.Must(goversion.NewVersion(s.version)).GreaterThanOrEqual(v130)
}

func (s *safeContract) isOwner(addr common.Address) bool {
	return addr != types.SentinelAddress && slices.Contains(s.owners, addr)
}

// SafeState is a read-only view of a simulated Safe.
type SafeState struct {
	Version         string
	Owners          []common.Address
	Threshold       uint64
	Nonce           uint64
	Modules         []common.Address
	FallbackHandler common.Address
}

// Safe returns the state of the Safe at addr.
func (c *Chain) Safe(addr common.Address) (SafeState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.safes[addr]
	if !ok {
		return SafeState{}, false
	}

	return SafeState{
		Version:         s.version,
		Owners:          slices.Clone(s.owners),
		Threshold:       s.threshold,
		Nonce:           s.nonce,
		Modules:         slices.Clone(s.modules),
		FallbackHandler: s.fallbackHandler,
	}, true
}

// SetNonce overwrites the nonce of the Safe at addr.
func (c *Chain) SetNonce(addr common.Address, nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.safes[addr].nonce = nonce
}

// CreateSafe installs a Safe at a fresh address without going through a factory.
func (c *Chain) CreateSafe(version string, owners []common.Address, threshold uint64) common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()

	addr := common.BytesToAddress(crypto.Keccak256([]byte("safesim/safe"), new(big.Int).SetUint64(uint64(len(c.safes))).Bytes()))
	c.safes[addr] = &safeContract{
		address:   addr,
		version:   version,
		owners:    slices.Clone(owners),
		threshold: threshold,
		approved:  make(map[common.Address]map[common.Hash]bool),
	}

	return addr
}

// TransactionHash computes the hash the Safe contract derives for the given fields, using the
// contract's own abi.encode based construction.
func (c *Chain) TransactionHash(safe common.Address, d types.SafeTransactionData) common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.safeTxHash(c.safes[safe], d.To, d.Value, d.Data, uint8(d.Operation), d.SafeTxGas, d.BaseGas, d.GasPrice, d.GasToken, d.RefundReceiver, new(big.Int).SetUint64(d.Nonce))
}

func (c *Chain) domainSeparator(s *safeContract) common.Hash {
	var enc []byte
	if s.atLeast130() {
		enc = mustEncode(`[{"type":"bytes32"},{"type":"uint256"},{"type":"address"}]`, domainTypehash, c.chainID, s.address)
	} else {
		enc = mustEncode(`[{"type":"bytes32"},{"type":"address"}]`, legacyDomainTypehash, s.address)
	}

	return crypto.Keccak256Hash(enc)
}

func (c *Chain) safeTxHash(
	s *safeContract,
	to common.Address, value *big.Int, data []byte, operation uint8,
	safeTxGas, baseGas, gasPrice *big.Int,
	gasToken, refundReceiver common.Address,
	nonce *big.Int,
) common.Hash {
	structHash := crypto.Keccak256Hash(mustEncode(
		`[{"type":"bytes32"},{"type":"address"},{"type":"uint256"},{"type":"bytes32"},{"type":"uint8"},`+
			`{"type":"uint256"},{"type":"uint256"},{"type":"uint256"},{"type":"address"},{"type":"address"},{"type":"uint256"}]`,
		safeTxTypehash, to, zeroIfNil(value), crypto.Keccak256Hash(data), operation,
		zeroIfNil(safeTxGas), zeroIfNil(baseGas), zeroIfNil(gasPrice), gasToken, refundReceiver, nonce,
	))
	domain := c.domainSeparator(s)

	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domain.Bytes(), structHash.Bytes())
}

func (c *Chain) callSafe(s *safeContract, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, revert("missing selector")
	}
	method, err := safeABI.MethodById(data[:4])
	if err != nil {
		return nil, revert("unknown selector")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, revert("bad arguments for %s", method.Name)
	}

	var out []any
	switch method.Name {
	case "VERSION":
		out = []any{s.version}
	case "nonce":
		out = []any{new(big.Int).SetUint64(s.nonce)}
	case "domainSeparator":
		out = []any{[32]byte(c.domainSeparator(s))}
	case "getOwners":
		out = []any{slices.Clone(s.owners)}
	case "getThreshold":
		out = []any{new(big.Int).SetUint64(s.threshold)}
	case "isOwner":
		out = []any{s.isOwner(args[0].(common.Address))}
	case "getModules":
		if s.atLeast130() {
			return nil, revert("getModules is not available on Safe %s", s.version)
		}
		out = []any{slices.Clone(s.modules)}
	case "getModulesPaginated":
		if !s.atLeast130() {
			return nil, revert("getModulesPaginated is not available on Safe %s", s.version)
		}
		out = paginate(s.modules, args[0].(common.Address), args[1].(*big.Int))
	case "isModuleEnabled":
		out = []any{slices.Contains(s.modules, args[0].(common.Address))}
	case "approvedHashes":
		marker := new(big.Int)
		if s.approved[args[0].(common.Address)][common.Hash(args[1].([32]byte))] {
			marker.SetInt64(1)
		}
		out = []any{marker}
	case "getTransactionHash":
		hash := c.safeTxHash(s,
			args[0].(common.Address), args[1].(*big.Int), args[2].([]byte), args[3].(uint8),
			args[4].(*big.Int), args[5].(*big.Int), args[6].(*big.Int),
			args[7].(common.Address), args[8].(common.Address), args[9].(*big.Int),
		)
		out = []any{[32]byte(hash)}
	default:
		return nil, revert("%s cannot be called as a view", method.Name)
	}

	return method.Outputs.Pack(out...)
}

func paginate(modules []common.Address, start common.Address, pageSize *big.Int) []any {
	from := 0
	if start != types.SentinelAddress {
		from = slices.Index(modules, start) + 1
	}
	size := int(pageSize.Int64())
	end := min(from+size, len(modules))

	next := types.SentinelAddress
	if end < len(modules) {
		next = modules[end-1]
	}

	return []any{slices.Clone(modules[from:end]), next}
}

func (c *Chain) transactSafe(s *safeContract, sender common.Address, data []byte) ([]*gethtypes.Log, error) {
	if len(data) < 4 {
		return nil, revert("missing selector")
	}
	method, err := safeABI.MethodById(data[:4])
	if err != nil {
		return nil, revert("unknown selector")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, revert("bad arguments for %s", method.Name)
	}

	switch method.Name {
	case "execTransaction":
		return c.execTransaction(s, sender, args)
	case "approveHash":
		if !s.isOwner(sender) {
			return nil, revert("GS030")
		}
		hash := common.Hash(args[0].([32]byte))
		if s.approved[sender] == nil {
			s.approved[sender] = make(map[common.Hash]bool)
		}
		s.approved[sender][hash] = true

		return []*gethtypes.Log{{
			Address: s.address,
			Topics:  []common.Hash{safeABI.Events["ApproveHash"].ID, hash, common.BytesToHash(sender.Bytes())},
		}}, nil
	default:
		if sender != s.address {
			return nil, revert("GS031")
		}

		return nil, c.selfCall(s, method.Name, args)
	}
}

func (c *Chain) execTransaction(s *safeContract, sender common.Address, args []any) ([]*gethtypes.Log, error) {
	to := args[0].(common.Address)
	value := args[1].(*big.Int)
	data := args[2].([]byte)
	operation := args[3].(uint8)
	safeTxGas := args[4].(*big.Int)
	gasPrice := args[6].(*big.Int)
	signatures := args[9].([]byte)

	txHash := c.safeTxHash(s, to, value, data, operation, safeTxGas, args[5].(*big.Int), gasPrice,
		args[7].(common.Address), args[8].(common.Address), new(big.Int).SetUint64(s.nonce))
	s.nonce++

	if err := s.checkSignatures(sender, txHash, signatures); err != nil {
		return nil, err
	}

	snap := c.snapshot()
	innerErr := c.execute(s, to, value, data, types.OperationType(operation))
	if innerErr != nil {
		c.restore(snap)
		// The restored snapshot holds a copy of s taken after the nonce increment.
		s = c.safes[s.address]
		if s.atLeast130() && safeTxGas.Sign() == 0 && gasPrice.Sign() == 0 {
			return nil, revert("GS013")
		}
	}

	event := safeABI.Events["ExecutionSuccess"]
	if innerErr != nil {
		event = safeABI.Events["ExecutionFailure"]
	}
	logData, err := event.Inputs.Pack([32]byte(txHash), new(big.Int))
	if err != nil {
		return nil, err
	}

	return []*gethtypes.Log{{
		Address: s.address,
		Topics:  []common.Hash{event.ID},
		Data:    logData,
	}}, nil
}

// checkSignatures mirrors the Safe contract: the first threshold signatures must come from
// distinct owners in strictly ascending address order.
func (s *safeContract) checkSignatures(sender common.Address, hash common.Hash, signatures []byte) error {
	if s.threshold == 0 {
		return revert("GS001")
	}
	if uint64(len(signatures)) < s.threshold*types.SignatureBytesLength {
		return revert("GS020")
	}

	var last common.Address
	for i := range s.threshold {
		chunk := signatures[i*types.SignatureBytesLength : (i+1)*types.SignatureBytesLength]
		sig, err := types.NewSignatureFromBytes(chunk)
		if err != nil {
			return revert("GS020")
		}

		var owner common.Address
		switch {
		case sig.V == 0:
			return revert("contract signatures are not supported")
		case sig.V == types.PreValidatedSignatureV:
			owner = common.BytesToAddress(sig.R.Bytes())
			if sender != owner && !s.approved[owner][hash] {
				return revert("GS025")
			}
		case sig.V > 30:
			sig.V -= types.SignatureEthSignVOffset
			owner, err = sig.Recover(common.BytesToHash(accounts.TextHash(hash.Bytes())))
			if err != nil {
				return revert("GS026")
			}
		default:
			owner, err = sig.Recover(hash)
			if err != nil {
				return revert("GS026")
			}
		}

		if bytes.Compare(owner.Bytes(), last.Bytes()) <= 0 || !s.isOwner(owner) {
			return revert("GS026")
		}
		last = owner
	}

	return nil
}

// execute runs the inner call of a Safe transaction with the Safe as msg.sender.
func (c *Chain) execute(s *safeContract, to common.Address, value *big.Int, data []byte, op types.OperationType) error {
	if op == types.DelegateCall {
		callOnly, ok := c.multiSends[to]
		if !ok {
			return revert("delegatecall target %s is not a MultiSend", to.Hex())
		}

		return c.multiSend(s, data, callOnly)
	}

	if _, ok := c.multiSends[to]; ok {
		return revert("MultiSend should only be called via delegatecall")
	}
	if err := c.transfer(s.address, to, value); err != nil {
		return err
	}
	if to == s.address && len(data) > 0 {
		return c.dispatchSelfCall(s, data)
	}

	return nil
}

func (c *Chain) dispatchSelfCall(s *safeContract, data []byte) error {
	if len(data) < 4 {
		return revert("missing selector")
	}
	method, err := safeABI.MethodById(data[:4])
	if err != nil {
		return revert("unknown selector")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return revert("bad arguments for %s", method.Name)
	}

	return c.selfCall(s, method.Name, args)
}

func (c *Chain) selfCall(s *safeContract, name string, args []any) error {
	switch name {
	case "addOwnerWithThreshold":
		owner := args[0].(common.Address)
		if types.IsRestrictedAddress(owner) || owner == s.address {
			return revert("GS203")
		}
		if s.isOwner(owner) {
			return revert("GS204")
		}
		s.owners = append([]common.Address{owner}, s.owners...)

		return s.changeThreshold(args[1].(*big.Int))
	case "removeOwner":
		prev, owner := args[0].(common.Address), args[1].(common.Address)
		if uint64(len(s.owners))-1 < args[2].(*big.Int).Uint64() {
			return revert("GS201")
		}
		index, err := linkedIndex(s.owners, prev, owner, "GS205")
		if err != nil {
			return err
		}
		s.owners = slices.Delete(s.owners, index, index+1)

		return s.changeThreshold(args[2].(*big.Int))
	case "swapOwner":
		prev, oldOwner, newOwner := args[0].(common.Address), args[1].(common.Address), args[2].(common.Address)
		if types.IsRestrictedAddress(newOwner) || newOwner == s.address {
			return revert("GS203")
		}
		if s.isOwner(newOwner) {
			return revert("GS204")
		}
		index, err := linkedIndex(s.owners, prev, oldOwner, "GS205")
		if err != nil {
			return err
		}
		s.owners[index] = newOwner

		return nil
	case "changeThreshold":
		return s.changeThreshold(args[0].(*big.Int))
	case "enableModule":
		module := args[0].(common.Address)
		if types.IsRestrictedAddress(module) {
			return revert("GS101")
		}
		if slices.Contains(s.modules, module) {
			return revert("GS102")
		}
		s.modules = append([]common.Address{module}, s.modules...)

		return nil
	case "disableModule":
		index, err := linkedIndex(s.modules, args[0].(common.Address), args[1].(common.Address), "GS103")
		if err != nil {
			return err
		}
		s.modules = slices.Delete(s.modules, index, index+1)

		return nil
	default:
		return revert("%s is not supported as a self call", name)
	}
}

func (s *safeContract) changeThreshold(threshold *big.Int) error {
	if threshold.Cmp(new(big.Int).SetUint64(uint64(len(s.owners)))) > 0 {
		return revert("GS201")
	}
	if threshold.Sign() == 0 {
		return revert("GS202")
	}
	s.threshold = threshold.Uint64()

	return nil
}

// linkedIndex checks that prev points at item in the contract's linked list and returns the
// position of item.
func linkedIndex(list []common.Address, prev, item common.Address, code string) (int, error) {
	index := slices.Index(list, item)
	if index < 0 || types.IsRestrictedAddress(item) {
		return 0, revert("%s", code)
	}

	want := types.SentinelAddress
	if index > 0 {
		want = list[index-1]
	}
	if prev != want {
		return 0, revert("%s", code)
	}

	return index, nil
}

func mustEncode(argsJSON string, values ...any) []byte {
	enc, err := abi.Encode(argsJSON, values...)
	if err != nil {
		panic(err)
	}

	return enc
}

func zeroIfNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return v
}
