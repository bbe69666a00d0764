package evm

import (
	"math/big"
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polywrap/safe-contracts-wrapper-sub000/internal/testutils/safesim"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

func TestCalculateSalt(t *testing.T) {
	t.Parallel()

	initializer := []byte{0xde, 0xad}
	want := crypto.Keccak256Hash(crypto.Keccak256(initializer), common.LeftPadBytes([]byte{7}, 32))

	assert.Equal(t, want, CalculateSalt(initializer, big.NewInt(7)))
	assert.Equal(t, CalculateSalt(initializer, big.NewInt(0)), CalculateSalt(initializer, nil))
	assert.NotEqual(t, CalculateSalt(initializer, big.NewInt(1)), CalculateSalt(initializer, big.NewInt(2)))
}

func TestPredictProxyAddress(t *testing.T) {
	t.Parallel()

	creationCode := []byte{0x60, 0x80}
	initializer := []byte{0x01}
	saltNonce := big.NewInt(3)

	initCode := slices.Concat(creationCode, common.LeftPadBytes(testSafe.Bytes(), 32))
	want := crypto.CreateAddress2(testFactory, CalculateSalt(initializer, saltNonce), crypto.Keccak256(initCode))

	assert.Equal(t, want, PredictProxyAddress(testFactory, testSafe, initializer, saltNonce, creationCode))
	assert.NotEqual(t, want, PredictProxyAddress(testFactory, testOwnerA, initializer, saltNonce, creationCode))
}

func TestProxyFactory_CreateProxy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version    string
		wantSchema any
	}{
		{version: "1.1.1", wantSchema: ProxyCreationV111Event{}},
		{version: "1.2.0", wantSchema: ProxyCreationV111Event{}},
		{version: "1.3.0", wantSchema: ProxyCreationV130Event{}},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			chain := safesim.NewChain()
			contracts := chain.DeployCanonical(tt.version)
			account := chain.NewAccount()
			factory := NewProxyFactory(account, contracts.ProxyFactoryAddress)

			initializer, err := EncodeSetup(types.SafeAccountConfig{Owners: testOwners, Threshold: 2}, contracts.FallbackHandlerAddress)
			require.NoError(t, err)
			saltNonce := big.NewInt(99)

			code, err := factory.ProxyCreationCode(t.Context())
			require.NoError(t, err)
			assert.Equal(t, safesim.ProxyCreationCode, code)

			predicted, err := factory.PredictProxyAddress(t.Context(), contracts.SafeMasterCopyAddress, initializer, saltNonce)
			require.NoError(t, err)

			proxy, result, err := factory.CreateProxy(t.Context(), contracts.SafeMasterCopyAddress, initializer, saltNonce, types.TransactionOptions{})
			require.NoError(t, err)
			assert.Equal(t, predicted, proxy)

			event, err := ParseProxyCreation(result.Receipt, contracts.ProxyFactoryAddress)
			require.NoError(t, err)
			assert.IsType(t, tt.wantSchema, event)

			state, ok := chain.Safe(proxy)
			require.True(t, ok)
			assert.Equal(t, tt.version, state.Version)
			assert.Equal(t, testOwners, state.Owners)
			assert.Equal(t, uint64(2), state.Threshold)
			assert.Equal(t, contracts.FallbackHandlerAddress, state.FallbackHandler)

			// The same salt cannot be deployed twice.
			_, _, err = factory.CreateProxy(t.Context(), contracts.SafeMasterCopyAddress, initializer, saltNonce, types.TransactionOptions{})
			require.ErrorContains(t, err, "Create2 call failed")
		})
	}
}
