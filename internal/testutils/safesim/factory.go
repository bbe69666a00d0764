package safesim

import (
	"encoding/hex"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	goversion "github.com/hashicorp/go-version"

	"github.com/polywrap/safe-contracts-wrapper-sub000/registry"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm/bindings"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

var (
	proxyFactoryABI   = bindings.GnosisSafeProxyFactoryABI()
	proxyCreationV111 = bindings.ProxyCreationV111ABI().Events["ProxyCreation"]
	proxyCreationV130 = bindings.ProxyCreationV130ABI().Events["ProxyCreation"]
	multiSendABI      = bindings.MultiSendABI()

	// ProxyCreationCode stands in for the proxy creation bytecode. Only its hash matters for
	// CREATE2, and predictions read it from the factory like they do on a real chain.
	ProxyCreationCode = slices.Concat(
		mustDecodeHex("608060405234801561001057600080fd5b50"),
		[]byte("safesim GnosisSafeProxy"),
	)
)

type factoryContract struct {
	address common.Address
	version string
}

// call serves the factory's pure views.
func (f *factoryContract) call(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, revert("missing selector")
	}
	method, err := proxyFactoryABI.MethodById(data[:4])
	if err != nil {
		return nil, revert("unknown selector")
	}
	if method.Name != "proxyCreationCode" {
		return nil, revert("%s cannot be called as a view", method.Name)
	}

	return method.Outputs.Pack(slices.Clone(ProxyCreationCode))
}

func (c *Chain) transactFactory(f *factoryContract, data []byte) ([]*gethtypes.Log, error) {
	if len(data) < 4 {
		return nil, revert("missing selector")
	}
	method, err := proxyFactoryABI.MethodById(data[:4])
	if err != nil || method.Name != "createProxyWithNonce" {
		return nil, revert("unsupported factory call")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, revert("bad arguments for %s", method.Name)
	}

	singleton := args[0].(common.Address)
	initializer := args[1].([]byte)
	saltNonce := args[2].(*big.Int)

	version, ok := c.masterCopies[singleton]
	if !ok {
		return nil, revert("no master copy at %s", singleton.Hex())
	}

	salt := crypto.Keccak256Hash(crypto.Keccak256(initializer), common.BigToHash(saltNonce).Bytes())
	initCode := slices.Concat(ProxyCreationCode, common.LeftPadBytes(singleton.Bytes(), 32))
	proxy := crypto.CreateAddress2(f.address, salt, crypto.Keccak256(initCode))
	if c.hasCode(proxy) {
		return nil, revert("Create2 call failed")
	}

	safe := &safeContract{
		address:  proxy,
		version:  version,
		approved: make(map[common.Address]map[common.Hash]bool),
	}
	if len(initializer) > 0 {
		if err := c.setup(safe, initializer); err != nil {
			return nil, err
		}
	}
	c.safes[proxy] = safe

	event := proxyCreationV130
	values := []any{proxy, singleton}
	if goversion.Must(goversion.NewVersion(f.version)).LessThan(v130) {
		event = proxyCreationV111
		values = values[:1]
	}
	logData, err := event.Inputs.Pack(values...)
	if err != nil {
		return nil, err
	}

	return []*gethtypes.Log{{
		Address: f.address,
		Topics:  []common.Hash{event.ID},
		Data:    logData,
	}}, nil
}

// setup applies a Safe setup initializer to a freshly created proxy.
func (c *Chain) setup(s *safeContract, initializer []byte) error {
	method, err := safeABI.MethodById(initializer[:4])
	if err != nil || method.Name != "setup" {
		return revert("initializer is not a setup call")
	}
	args, err := method.Inputs.Unpack(initializer[4:])
	if err != nil {
		return revert("bad arguments for setup")
	}

	owners := args[0].([]common.Address)
	threshold := args[1].(*big.Int)
	if threshold.Cmp(big.NewInt(int64(len(owners)))) > 0 {
		return revert("GS201")
	}
	if threshold.Sign() == 0 {
		return revert("GS202")
	}
	for i, owner := range owners {
		if types.IsRestrictedAddress(owner) || owner == s.address {
			return revert("GS203")
		}
		if slices.Contains(owners[:i], owner) {
			return revert("GS204")
		}
	}

	s.owners = slices.Clone(owners)
	s.threshold = threshold.Uint64()
	s.fallbackHandler = args[4].(common.Address)

	return nil
}

// multiSend runs a packed batch on behalf of the Safe. Any failing entry fails the whole batch.
func (c *Chain) multiSend(s *safeContract, data []byte, callOnly bool) error {
	method, err := multiSendABI.MethodById(data)
	if err != nil || method.Name != "multiSend" {
		return revert("not a multiSend call")
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return revert("bad arguments for multiSend")
	}
	packed := args[0].([]byte)

	const header = 1 + common.AddressLength + 32 + 32
	for offset := 0; offset < len(packed); {
		if len(packed)-offset < header {
			return revert("truncated multisend entry")
		}
		op := types.OperationType(packed[offset])
		to := common.BytesToAddress(packed[offset+1 : offset+1+common.AddressLength])
		value := new(big.Int).SetBytes(packed[offset+21 : offset+53])
		length := new(big.Int).SetBytes(packed[offset+53 : offset+85])
		offset += header

		if !length.IsInt64() || length.Int64() > int64(len(packed)-offset) {
			return revert("multisend entry data out of range")
		}
		end := offset + int(length.Int64())
		payload := packed[offset:end]
		offset = end

		if op == types.DelegateCall && callOnly {
			return revert("Unexpected operation")
		}
		if err := c.execute(s, to, value, payload, op); err != nil {
			return err
		}
	}

	return nil
}

// DeployCanonical installs the version's singletons at their canonical registry addresses for
// this chain's ID.
func (c *Chain) DeployCanonical(version string) types.ContractNetworkConfig {
	var cfg types.ContractNetworkConfig
	reg := registry.New()
	for _, kind := range []types.ContractKind{
		types.ContractKindProxyFactory,
		types.ContractKindSafeMasterCopy,
		types.ContractKindSafeL2MasterCopy,
		types.ContractKindMultiSend,
		types.ContractKindMultiSendCallOnly,
		types.ContractKindFallbackHandler,
	} {
		addr, ok := reg.Lookup(version, c.ChainID(), kind)
		if !ok {
			continue
		}
		setAddress(&cfg, kind, addr)
	}
	c.DeployAt(version, cfg)

	return cfg
}

// DeployLocal installs the version's singletons at fresh addresses, as a deployment on a private
// network would, and returns the resulting config.
func (c *Chain) DeployLocal(version string) types.ContractNetworkConfig {
	addr := func(kind types.ContractKind) common.Address {
		return common.BytesToAddress(crypto.Keccak256([]byte("safesim/"+version+"/"+string(kind)), c.chainID.Bytes()))
	}
	cfg := types.ContractNetworkConfig{
		ProxyFactoryAddress:      addr(types.ContractKindProxyFactory),
		SafeMasterCopyAddress:    addr(types.ContractKindSafeMasterCopy),
		SafeL2MasterCopyAddress:  addr(types.ContractKindSafeL2MasterCopy),
		MultiSendAddress:         addr(types.ContractKindMultiSend),
		MultiSendCallOnlyAddress: addr(types.ContractKindMultiSendCallOnly),
		FallbackHandlerAddress:   addr(types.ContractKindFallbackHandler),
	}
	c.DeployAt(version, cfg)

	return cfg
}

// DeployAt installs the version's singletons at the addresses in cfg. Zero addresses are skipped.
func (c *Chain) DeployAt(version string, cfg types.ContractNetworkConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg.ProxyFactoryAddress != types.ZeroAddress {
		c.factories[cfg.ProxyFactoryAddress] = &factoryContract{address: cfg.ProxyFactoryAddress, version: version}
	}
	if cfg.SafeMasterCopyAddress != types.ZeroAddress {
		c.masterCopies[cfg.SafeMasterCopyAddress] = version
	}
	if cfg.SafeL2MasterCopyAddress != types.ZeroAddress {
		c.masterCopies[cfg.SafeL2MasterCopyAddress] = version
	}
	if cfg.MultiSendAddress != types.ZeroAddress {
		c.multiSends[cfg.MultiSendAddress] = false
	}
	if cfg.MultiSendCallOnlyAddress != types.ZeroAddress {
		c.multiSends[cfg.MultiSendCallOnlyAddress] = true
	}
	if cfg.FallbackHandlerAddress != types.ZeroAddress {
		c.handlers[cfg.FallbackHandlerAddress] = true
	}
}

func setAddress(cfg *types.ContractNetworkConfig, kind types.ContractKind, addr common.Address) {
	switch kind {
	case types.ContractKindProxyFactory:
		cfg.ProxyFactoryAddress = addr
	case types.ContractKindSafeMasterCopy:
		cfg.SafeMasterCopyAddress = addr
	case types.ContractKindSafeL2MasterCopy:
		cfg.SafeL2MasterCopyAddress = addr
	case types.ContractKindMultiSend:
		cfg.MultiSendAddress = addr
	case types.ContractKindMultiSendCallOnly:
		cfg.MultiSendCallOnlyAddress = addr
	case types.ContractKindFallbackHandler:
		cfg.FallbackHandlerAddress = addr
	}
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}

	return b
}
