package safe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	safe "github.com/polywrap/safe-contracts-wrapper-sub000"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// session is a connected provider plus the settings it was built from.
type session struct {
	cfg      config
	provider *evm.Provider
	chainID  *big.Int
}

// connect loads the configuration for cmd, dials the RPC endpoint and checks it serves the chain
// the selector names.
func connect(cmd *cobra.Command) (context.Context, *session, error) {
	v, err := buildViper(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if cfg.Verbose {
		ctx = sdk.WithLogger(ctx, zap.Must(zap.NewDevelopment()).Sugar())
	}

	signer, err := loadSigner(cfg)
	if err != nil {
		return nil, nil, err
	}

	provider, err := evm.Dial(ctx, cfg.RPCURL, signer)
	if err != nil {
		return nil, nil, err
	}

	chainID, err := provider.GetChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	expected, err := cfg.expectedChainID()
	if err != nil {
		return nil, nil, err
	}
	if expected != 0 && (!chainID.IsUint64() || chainID.Uint64() != expected) {
		return nil, nil, fmt.Errorf("RPC endpoint serves chain %s, selector %d expects chain %d", chainID, cfg.Selector, expected)
	}

	return ctx, &session{cfg: cfg, provider: provider, chainID: chainID}, nil
}

func loadSigner(cfg config) (evm.Signer, error) {
	if cfg.Ledger {
		path, err := accounts.ParseDerivationPath(cfg.DerivationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse derivation path: %w", err)
		}

		return evm.NewLedgerSigner(path), nil
	}

	if cfg.PrivateKey == "" {
		return nil, errors.New("PRIVATE_KEY not found in the environment or .env file")
	}

	return evm.NewPrivateKeySignerFromHex(cfg.PrivateKey)
}

// options turns the session settings into Safe facade options.
func (s *session) options() []safe.Option {
	opts := []safe.Option{safe.WithL1SafeMasterCopy(s.cfg.L1)}
	if s.cfg.SafeVersion != "" {
		opts = append(opts, safe.WithVersion(s.cfg.SafeVersion))
	}
	if len(s.cfg.Networks) > 0 {
		opts = append(opts, safe.WithContractNetworks(s.cfg.Networks))
	}

	return opts
}

func (s *session) loadSafe(ctx context.Context) (*safe.Safe, error) {
	address, err := s.cfg.safeAddress()
	if err != nil {
		return nil, err
	}

	return safe.New(ctx, s.provider, address, s.options()...)
}

func readTransaction(path string) (*types.SafeTransaction, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction file: %w", err)
	}

	var tx types.SafeTransaction
	if err := json.Unmarshal(b, &tx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction file %s: %w", path, err)
	}

	return &tx, nil
}

func writeTransaction(path string, tx *types.SafeTransaction) error {
	b, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(b, '\n'), 0o600)
}

func parseAddresses(values []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(values))
	for _, value := range values {
		if !common.IsHexAddress(value) {
			return nil, fmt.Errorf("invalid address %q", value)
		}
		addresses = append(addresses, common.HexToAddress(value))
	}

	return addresses, nil
}

func parseBigInt(name, value string) (*big.Int, error) {
	if value == "" {
		return nil, nil
	}

	n, ok := new(big.Int).SetString(value, 0)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s %q", name, value)
	}

	return n, nil
}
