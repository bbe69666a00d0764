package safe

import (
	"bytes"
	"math/big"
	"slices"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polywrap/safe-contracts-wrapper-sub000/internal/testutils/safesim"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

var (
	testRecipient = common.HexToAddress("0x00000000000000000000000000000000000beef1")
	testModule    = common.HexToAddress("0x0000000000000000000000000000000000000a0a")
)

// fixture is a simulated chain with the canonical singletons of one version and a Safe owned by
// funded accounts sorted by address.
type fixture struct {
	chain     *safesim.Chain
	contracts types.ContractNetworkConfig
	owners    []*safesim.Account
	address   common.Address
}

func newFixture(t *testing.T, version string, ownerCount int, threshold uint64) fixture {
	t.Helper()

	chain := safesim.NewChain()
	contracts := chain.DeployCanonical(version)

	owners := make([]*safesim.Account, ownerCount)
	for i := range owners {
		owners[i] = chain.NewAccount()
	}
	slices.SortFunc(owners, func(a, b *safesim.Account) int {
		return bytes.Compare(a.Address().Bytes(), b.Address().Bytes())
	})

	return fixture{
		chain:     chain,
		contracts: contracts,
		owners:    owners,
		address:   chain.CreateSafe(version, addressesOf(owners), threshold),
	}
}

func (f fixture) connect(t *testing.T, provider sdk.Provider, opts ...Option) *Safe {
	t.Helper()

	s, err := New(t.Context(), provider, f.address, opts...)
	require.NoError(t, err)

	return s
}

func (f fixture) ownerAddresses() []common.Address {
	return addressesOf(f.owners)
}

func addressesOf(accounts []*safesim.Account) []common.Address {
	return lo.Map(accounts, func(a *safesim.Account, _ int) common.Address { return a.Address() })
}

func ptr[T any](v T) *T {
	return &v
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []Option
		wantVersion string
		wantErr     string
	}{
		{
			name:        "reads version from contract",
			wantVersion: "1.3.0",
		},
		{
			name:        "pinned version",
			opts:        []Option{WithVersion("1.2.0")},
			wantVersion: "1.2.0",
		},
		{
			name:        "pinned version is normalized",
			opts:        []Option{WithVersion("v1.3")},
			wantVersion: "1.3.0",
		},
		{
			name:    "unparseable version",
			opts:    []Option{WithVersion("latest")},
			wantErr: "unsupported Safe version: latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, "1.3.0", 1, 1)

			s, err := New(t.Context(), f.owners[0], f.address, tt.opts...)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				require.ErrorIs(t, err, sdkerrors.ErrValidation)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, s.Version())
			assert.Equal(t, f.address, s.Address())
			assert.Equal(t, f.owners[0], s.Provider())
		})
	}
}

func TestNew_NoContract(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 1, 1)

	_, err := New(t.Context(), f.owners[0], testRecipient)
	require.ErrorContains(t, err, "failed to read Safe version")
}

func TestSafe_Accessors(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"1.1.1", "1.2.0", "1.3.0"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, version, 3, 2)
			f.chain.SetNonce(f.address, 4)
			f.chain.Fund(f.address, big.NewInt(500))
			s := f.connect(t, f.owners[0])
			ctx := t.Context()

			chainID, err := s.GetChainID(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(safesim.DefaultChainID), chainID.Int64())

			nonce, err := s.GetNonce(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(4), nonce)

			balance, err := s.GetBalance(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(500), balance.Int64())

			owners, err := s.GetOwners(ctx)
			require.NoError(t, err)
			assert.Equal(t, f.ownerAddresses(), owners)

			threshold, err := s.GetThreshold(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(2), threshold)

			isOwner, err := s.IsOwner(ctx, f.owners[1].Address())
			require.NoError(t, err)
			assert.True(t, isOwner)

			isOwner, err = s.IsOwner(ctx, testRecipient)
			require.NoError(t, err)
			assert.False(t, isOwner)

			modules, err := s.GetModules(ctx)
			require.NoError(t, err)
			assert.Empty(t, modules)

			enabled, err := s.IsModuleEnabled(ctx, testModule)
			require.NoError(t, err)
			assert.False(t, enabled)
		})
	}
}

func TestSafe_ManagementTransactions(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 2, 1)
	s := f.connect(t, f.owners[0])
	ctx := t.Context()
	newOwner := common.HexToAddress("0x00000000000000000000000000000000000c0de1")
	swapped := common.HexToAddress("0x00000000000000000000000000000000000c0de2")

	steps := []struct {
		name   string
		create func() (*types.SafeTransaction, error)
		check  func(t *testing.T, state safesim.SafeState)
	}{
		{
			name:   "add owner",
			create: func() (*types.SafeTransaction, error) { return s.CreateAddOwnerTx(ctx, newOwner, nil) },
			check: func(t *testing.T, state safesim.SafeState) {
				t.Helper()
				assert.Equal(t, append([]common.Address{newOwner}, f.ownerAddresses()...), state.Owners)
				assert.Equal(t, uint64(1), state.Threshold)
			},
		},
		{
			name:   "swap owner",
			create: func() (*types.SafeTransaction, error) { return s.CreateSwapOwnerTx(ctx, f.owners[1].Address(), swapped) },
			check: func(t *testing.T, state safesim.SafeState) {
				t.Helper()
				assert.Equal(t, []common.Address{newOwner, f.owners[0].Address(), swapped}, state.Owners)
			},
		},
		{
			name:   "remove owner",
			create: func() (*types.SafeTransaction, error) { return s.CreateRemoveOwnerTx(ctx, newOwner, ptr(uint64(1))) },
			check: func(t *testing.T, state safesim.SafeState) {
				t.Helper()
				assert.Equal(t, []common.Address{f.owners[0].Address(), swapped}, state.Owners)
			},
		},
		{
			name:   "enable module",
			create: func() (*types.SafeTransaction, error) { return s.CreateEnableModuleTx(ctx, testModule) },
			check: func(t *testing.T, state safesim.SafeState) {
				t.Helper()
				assert.Equal(t, []common.Address{testModule}, state.Modules)
			},
		},
		{
			name:   "disable module",
			create: func() (*types.SafeTransaction, error) { return s.CreateDisableModuleTx(ctx, testModule) },
			check: func(t *testing.T, state safesim.SafeState) {
				t.Helper()
				assert.Empty(t, state.Modules)
			},
		},
		{
			name:   "change threshold",
			create: func() (*types.SafeTransaction, error) { return s.CreateChangeThresholdTx(ctx, 2) },
			check: func(t *testing.T, state safesim.SafeState) {
				t.Helper()
				assert.Equal(t, uint64(2), state.Threshold)
			},
		},
	}

	// The steps build on each other, so they run in order on one Safe.
	for i, step := range steps {
		tx, err := step.create()
		require.NoError(t, err, step.name)
		assert.Equal(t, f.address, tx.Data.To, step.name)
		assert.Equal(t, uint64(i), tx.Data.Nonce, step.name)

		_, err = s.ExecuteTransaction(ctx, tx, types.TransactionOptions{})
		require.NoError(t, err, step.name)

		state, ok := f.chain.Safe(f.address)
		require.True(t, ok)
		step.check(t, state)
	}

	enabled, err := s.IsModuleEnabled(ctx, testModule)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestSafe_ManagementValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 2, 2)
	s := f.connect(t, f.owners[0])
	ctx := t.Context()

	_, err := s.CreateAddOwnerTx(ctx, f.owners[1].Address(), nil)
	require.EqualError(t, err, "address provided is already an owner")

	_, err = s.CreateRemoveOwnerTx(ctx, testRecipient, nil)
	require.EqualError(t, err, "address provided is not an owner")

	_, err = s.CreateChangeThresholdTx(ctx, 3)
	require.EqualError(t, err, "threshold cannot exceed owner count")

	_, err = s.CreateDisableModuleTx(ctx, testModule)
	require.EqualError(t, err, "module provided is not enabled yet")

	_, err = s.CreateEnableModuleTx(ctx, types.SentinelAddress)
	require.ErrorIs(t, err, sdkerrors.ErrValidation)
}
