package safe

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// Flag names double as viper keys; the matching environment variable is the upper-cased name with
// dashes replaced by underscores (--rpc-url reads RPC_URL).
const (
	rpcURLKey         = "rpc-url"
	selectorKey       = "selector"
	safeKey           = "safe"
	safeVersionKey    = "safe-version"
	networksKey       = "networks"
	l1Key             = "l1"
	ledgerKey         = "ledger"
	derivationPathKey = "derivation-path"
	verboseKey        = "verbose"
	privateKeyKey     = "private-key"

	defaultDerivationPath = "m/44'/60'/0'/0/0"
)

// config is everything a subcommand needs to reach a chain and a Safe.
type config struct {
	RPCURL         string
	Selector       uint64
	Safe           string
	SafeVersion    string
	Networks       types.ContractNetworksConfig
	L1             bool
	Ledger         bool
	DerivationPath string
	PrivateKey     string
	Verbose        bool
}

// buildViper binds the command flags and the environment. A missing .env file is not an error.
func buildViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}
	v.SetDefault(derivationPathKey, defaultDerivationPath)

	return v, nil
}

// loadConfig reads the connection settings. Precedence is flags, then the environment (including
// .env), then defaults.
func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		RPCURL:         v.GetString(rpcURLKey),
		Safe:           v.GetString(safeKey),
		SafeVersion:    v.GetString(safeVersionKey),
		L1:             v.GetBool(l1Key),
		Ledger:         v.GetBool(ledgerKey),
		DerivationPath: v.GetString(derivationPathKey),
		PrivateKey:     v.GetString(privateKeyKey),
		Verbose:        v.GetBool(verboseKey),
	}

	selector, err := cast.ToUint64E(v.Get(selectorKey))
	if err != nil {
		return config{}, fmt.Errorf("invalid chain selector %v: %w", v.Get(selectorKey), err)
	}
	cfg.Selector = selector

	// RPC_URL_<selector> is the per-chain fallback when no explicit URL is given.
	if cfg.RPCURL == "" && cfg.Selector != 0 {
		cfg.RPCURL = v.GetString(fmt.Sprintf("rpc_url_%d", cfg.Selector))
	}
	if cfg.RPCURL == "" {
		return config{}, errors.New("no RPC endpoint: set --rpc-url, RPC_URL or RPC_URL_<selector>")
	}

	if path := v.GetString(networksKey); path != "" {
		cfg.Networks, err = loadNetworks(path)
		if err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

// expectedChainID returns the EVM chain ID the selector points at, or 0 when no selector is set.
func (c config) expectedChainID() (uint64, error) {
	if c.Selector == 0 {
		return 0, nil
	}

	chainID, err := chainsel.ChainIdFromSelector(c.Selector)
	if err != nil {
		return 0, fmt.Errorf("unknown chain selector %d: %w", c.Selector, err)
	}

	return chainID, nil
}

func (c config) safeAddress() (common.Address, error) {
	if !common.IsHexAddress(c.Safe) {
		return common.Address{}, fmt.Errorf("invalid Safe address %q", c.Safe)
	}

	return common.HexToAddress(c.Safe), nil
}

// networkEntry is one chain in a networks file:
//
//	[networks.31337]
//	proxy_factory = "0x..."
//	safe_master_copy = "0x..."
type networkEntry struct {
	ProxyFactory      string `toml:"proxy_factory"`
	SafeMasterCopy    string `toml:"safe_master_copy"`
	SafeL2MasterCopy  string `toml:"safe_l2_master_copy"`
	MultiSend         string `toml:"multi_send"`
	MultiSendCallOnly string `toml:"multi_send_call_only"`
	FallbackHandler   string `toml:"fallback_handler"`
}

type networksFile struct {
	Networks map[string]networkEntry `toml:"networks"`
}

// loadNetworks reads per-chain singleton overrides from a TOML file.
func loadNetworks(path string) (types.ContractNetworksConfig, error) {
	var file networksFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read networks file %s: %w", path, err)
	}

	networks := make(types.ContractNetworksConfig, len(file.Networks))
	for key, entry := range file.Networks {
		chainID, err := cast.ToUint64E(key)
		if err != nil {
			return nil, fmt.Errorf("invalid chain ID %q in networks file: %w", key, err)
		}

		network, err := entry.toConfig()
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", chainID, err)
		}
		networks[chainID] = network
	}

	return networks, nil
}

func (e networkEntry) toConfig() (types.ContractNetworkConfig, error) {
	var (
		cfg  types.ContractNetworkConfig
		errs []error
	)

	parse := func(field, value string, dst *common.Address) {
		if value == "" {
			return
		}
		if !common.IsHexAddress(value) {
			errs = append(errs, fmt.Errorf("invalid %s address %q", field, value))
			return
		}
		*dst = common.HexToAddress(value)
	}

	parse("proxy_factory", e.ProxyFactory, &cfg.ProxyFactoryAddress)
	parse("safe_master_copy", e.SafeMasterCopy, &cfg.SafeMasterCopyAddress)
	parse("safe_l2_master_copy", e.SafeL2MasterCopy, &cfg.SafeL2MasterCopyAddress)
	parse("multi_send", e.MultiSend, &cfg.MultiSendAddress)
	parse("multi_send_call_only", e.MultiSendCallOnly, &cfg.MultiSendCallOnlyAddress)
	parse("fallback_handler", e.FallbackHandler, &cfg.FallbackHandlerAddress)

	return cfg, errors.Join(errs...)
}
