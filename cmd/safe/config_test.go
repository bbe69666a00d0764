package safe

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	selector := chainsel.ETHEREUM_MAINNET.Selector
	selectorRPCKey := fmt.Sprintf("rpc_url_%d", selector)

	tests := []struct {
		name      string
		values    map[string]any
		wantRPC   string
		wantChain uint64
		wantErr   string
	}{
		{
			name:    "explicit endpoint",
			values:  map[string]any{rpcURLKey: "http://localhost:8545"},
			wantRPC: "http://localhost:8545",
		},
		{
			name: "endpoint per selector",
			values: map[string]any{
				selectorKey:    selector,
				selectorRPCKey: "https://mainnet.example",
			},
			wantRPC:   "https://mainnet.example",
			wantChain: 1,
		},
		{
			name:      "selector from environment string",
			values:    map[string]any{selectorKey: "5009297550715157269", rpcURLKey: "http://localhost:8545"},
			wantRPC:   "http://localhost:8545",
			wantChain: 1,
		},
		{
			name:    "no endpoint",
			values:  map[string]any{},
			wantErr: "no RPC endpoint: set --rpc-url, RPC_URL or RPC_URL_<selector>",
		},
		{
			name:    "invalid selector",
			values:  map[string]any{selectorKey: "mainnet", rpcURLKey: "http://localhost:8545"},
			wantErr: "invalid chain selector mainnet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := viper.New()
			for key, value := range tt.values {
				v.Set(key, value)
			}

			cfg, err := loadConfig(v)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRPC, cfg.RPCURL)

			chainID, err := cfg.expectedChainID()
			require.NoError(t, err)
			assert.Equal(t, tt.wantChain, chainID)
		})
	}
}

func TestLoadNetworks(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "networks.toml", `
[networks.31337]
proxy_factory = "0x00000000000000000000000000000000000000f1"
safe_l2_master_copy = "0x00000000000000000000000000000000000000f2"
multi_send = "0x00000000000000000000000000000000000000f3"
`)

	networks, err := loadNetworks(path)
	require.NoError(t, err)
	assert.Equal(t, types.ContractNetworksConfig{
		31337: {
			ProxyFactoryAddress:     common.HexToAddress("0xf1"),
			SafeL2MasterCopyAddress: common.HexToAddress("0xf2"),
			MultiSendAddress:        common.HexToAddress("0xf3"),
		},
	}, networks)
}

func TestLoadNetworks_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "chain id is not a number",
			content: "[networks.local]\nmulti_send = \"0x00000000000000000000000000000000000000f3\"\n",
			wantErr: `invalid chain ID "local" in networks file`,
		},
		{
			name:    "bad address",
			content: "[networks.5]\nproxy_factory = \"0x1234\"\n",
			wantErr: `chain 5: invalid proxy_factory address "0x1234"`,
		},
		{
			name:    "not toml",
			content: "[networks.5\n",
			wantErr: "failed to read networks file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadNetworks(writeFile(t, "networks.toml", tt.content))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTxFlags(t *testing.T) {
	t.Parallel()

	flags := txFlags{
		to:           "0x00000000000000000000000000000000000beef1",
		value:        "1000",
		data:         "0xcafe",
		delegateCall: true,
		nonce:        4,
		safeTxGas:    "0x10",
	}

	partial, err := flags.partial()
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xbeef1"), partial.To)
	assert.Equal(t, int64(1000), partial.Value.Int64())
	assert.Equal(t, []byte{0xca, 0xfe}, partial.Data)
	require.NotNil(t, partial.Operation)
	assert.Equal(t, types.DelegateCall, *partial.Operation)

	props, err := flags.optionalProps()
	require.NoError(t, err)
	require.NotNil(t, props.Nonce)
	assert.Equal(t, uint64(4), *props.Nonce)
	assert.Equal(t, int64(16), props.SafeTxGas.Int64())

	props, err = txFlags{nonce: -1}.optionalProps()
	require.NoError(t, err)
	assert.Nil(t, props.Nonce)
	assert.Nil(t, props.SafeTxGas)

	_, err = txFlags{to: "0xbeef"}.partial()
	require.EqualError(t, err, `invalid recipient "0xbeef"`)

	_, err = txFlags{to: flags.to, value: "-1"}.partial()
	require.EqualError(t, err, `invalid value "-1"`)
}

func TestDeploymentFlags(t *testing.T) {
	t.Parallel()

	flags := deploymentFlags{
		owners:          []string{"0x0000000000000000000000000000000000000001", "0x0000000000000000000000000000000000000002"},
		threshold:       2,
		saltNonce:       "9",
		fallbackHandler: "0x0000000000000000000000000000000000000003",
	}

	cfg, err := flags.config()
	require.NoError(t, err)
	assert.Equal(t, []common.Address{common.HexToAddress("0x1"), common.HexToAddress("0x2")}, cfg.SafeAccountConfig.Owners)
	assert.Equal(t, uint64(2), cfg.SafeAccountConfig.Threshold)
	assert.Equal(t, "9", cfg.SaltNonce)
	require.NotNil(t, cfg.SafeAccountConfig.FallbackHandler)
	assert.Equal(t, common.HexToAddress("0x3"), *cfg.SafeAccountConfig.FallbackHandler)

	_, err = (&deploymentFlags{owners: []string{"nope"}}).config()
	require.EqualError(t, err, `invalid address "nope"`)
}

func TestDeploymentFlags_DefaultSaltNonce(t *testing.T) {
	t.Parallel()

	var flags deploymentFlags
	cmd := &cobra.Command{Use: "deploy"}
	flags.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--owners", "0x0000000000000000000000000000000000000001"}))

	saltNonce := cmd.Flags().Lookup("salt-nonce")
	require.NotNil(t, saltNonce)
	assert.Equal(t, "Decimal salt nonce; 0 when empty", saltNonce.Usage)

	cfg, err := flags.config()
	require.NoError(t, err)
	nonce, err := cfg.SaltNonceValue()
	require.NoError(t, err)
	assert.Zero(t, nonce.Sign())
}

func TestTransactionFileRoundTrip(t *testing.T) {
	t.Parallel()

	tx := types.NewSafeTransaction(types.Standardize(types.SafeTransactionDataPartial{
		To:    common.HexToAddress("0xbeef1"),
		Value: big.NewInt(5),
		Data:  []byte{0x01},
	}))
	tx.AddSignature(types.NewPreValidatedSignature(common.HexToAddress("0x1")))

	path := filepath.Join(t.TempDir(), "tx.json")
	require.NoError(t, writeTransaction(path, tx))

	got, err := readTransaction(path)
	require.NoError(t, err)
	assert.True(t, tx.Data.Equal(got.Data))
	assert.Equal(t, tx.Signatures(), got.Signatures())
}

func TestDecodeCmd(t *testing.T) {
	t.Parallel()

	cmd := BuildSafeCmd()
	cmd.SetArgs([]string{"decode", "0x12"})
	require.ErrorContains(t, cmd.Execute(), "call data too short")

	cmd = BuildSafeCmd()
	cmd.SetArgs([]string{"decode", "zz"})
	require.ErrorContains(t, cmd.Execute(), "invalid call data")
}
