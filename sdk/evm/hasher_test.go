package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polywrap/safe-contracts-wrapper-sub000/internal/testutils/safesim"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

func TestDomainIncludesChainID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    string
		want    bool
		wantErr bool
	}{
		{give: "1.1.1", want: false},
		{give: "1.2.0", want: false},
		{give: "1.3.0", want: true},
		{give: "1.4.1", want: true},
		{give: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			got, err := DomainIncludesChainID(tt.give)
			if tt.wantErr {
				require.ErrorIs(t, err, sdkerrors.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The off-chain EIP-712 hash must equal what the contract computes from abi.encode.
func TestTransactionHash_MatchesContract(t *testing.T) {
	t.Parallel()

	txs := map[string]types.SafeTransactionData{
		"empty call": types.Standardize(types.SafeTransactionDataPartial{To: testTarget}),
		"full": {
			To:             testTarget,
			Value:          big.NewInt(123456789),
			Data:           hexutil.MustDecode("0xa9059cbb000000000000000000000000000000000000000000000000000000000000dead"),
			Operation:      types.DelegateCall,
			SafeTxGas:      big.NewInt(50000),
			BaseGas:        big.NewInt(10),
			GasPrice:       big.NewInt(3),
			GasToken:       testOwnerC,
			RefundReceiver: testOwnerB,
			Nonce:          42,
		},
	}

	for _, version := range []string{"1.1.1", "1.2.0", "1.3.0"} {
		for name, d := range txs {
			t.Run(version+"/"+name, func(t *testing.T) {
				t.Parallel()

				chain := safesim.NewChainWithID(137)
				safe := chain.CreateSafe(version, []common.Address{testOwnerA}, 1)

				got, err := TransactionHash(safe, big.NewInt(137), version, d)
				require.NoError(t, err)
				assert.Equal(t, chain.TransactionHash(safe, d), got)

				inspector := NewInspector(chain.NewAccount(), safe)
				onChain, err := inspector.GetTransactionHash(t.Context(), d)
				require.NoError(t, err)
				assert.Equal(t, onChain, got)
			})
		}
	}
}

func TestTransactionHash_ChainID(t *testing.T) {
	t.Parallel()

	d := types.Standardize(types.SafeTransactionDataPartial{To: testTarget, Value: big.NewInt(1)})

	legacyMainnet, err := TransactionHash(testSafe, big.NewInt(1), "1.2.0", d)
	require.NoError(t, err)
	legacyOther, err := TransactionHash(testSafe, big.NewInt(5), "1.2.0", d)
	require.NoError(t, err)
	assert.Equal(t, legacyMainnet, legacyOther, "pre-1.3.0 domain has no chain ID")

	mainnet, err := TransactionHash(testSafe, big.NewInt(1), "1.3.0", d)
	require.NoError(t, err)
	other, err := TransactionHash(testSafe, big.NewInt(5), "1.3.0", d)
	require.NoError(t, err)
	assert.NotEqual(t, mainnet, other)

	_, err = TransactionHash(testSafe, nil, "1.3.0", d)
	require.EqualError(t, err, "chain ID is required for Safe 1.3.0")
}

func TestTransactionHash_NonceChangesHash(t *testing.T) {
	t.Parallel()

	d := types.Standardize(types.SafeTransactionDataPartial{To: testTarget})
	first, err := TransactionHash(testSafe, big.NewInt(1), "1.3.0", d)
	require.NoError(t, err)

	d.Nonce++
	second, err := TransactionHash(testSafe, big.NewInt(1), "1.3.0", d)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSafeTxTypedData(t *testing.T) {
	t.Parallel()

	d := types.Standardize(types.SafeTransactionDataPartial{To: testTarget, Value: big.NewInt(9)})

	typed, err := SafeTxTypedData(testSafe, big.NewInt(1), "1.3.0", d)
	require.NoError(t, err)
	assert.Equal(t, "SafeTx", typed.PrimaryType)
	assert.Len(t, typed.Types["EIP712Domain"], 2)
	assert.Equal(t, "9", typed.Message["value"])
	assert.Equal(t, "0x", typed.Message["data"])

	legacy, err := SafeTxTypedData(testSafe, big.NewInt(1), "1.1.1", d)
	require.NoError(t, err)
	assert.Len(t, legacy.Types["EIP712Domain"], 1)
	assert.Nil(t, legacy.Domain.ChainId)
}
