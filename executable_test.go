package safe

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

func TestExecuteTransaction_SignedApprovedAndRelayed(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"1.1.1", "1.2.0", "1.3.0"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, version, 3, 2)
			f.chain.Fund(f.address, big.NewInt(1000))
			ctx := t.Context()

			ownerA := f.connect(t, f.owners[0])
			ownerB := f.connect(t, f.owners[1])
			relayer := f.connect(t, f.chain.NewAccount())

			tx := newTransferTx(t, ownerA, 250)
			require.NoError(t, ownerA.AddSignature(ctx, tx, types.SigningMethodEthSign))

			hash, err := ownerB.GetTransactionHash(ctx, tx)
			require.NoError(t, err)
			_, err = ownerB.ApproveTransactionHash(ctx, hash, types.TransactionOptions{})
			require.NoError(t, err)

			result, err := relayer.ExecuteTransaction(ctx, tx, types.TransactionOptions{})
			require.NoError(t, err)

			outcome, ok, err := evm.ParseExecutionResult(result.Receipt, f.address)
			require.NoError(t, err)
			require.True(t, ok)
			assert.True(t, outcome.Success)
			assert.Equal(t, hash, outcome.SafeTxHash)

			assert.Equal(t, int64(250), f.chain.Balance(testRecipient).Int64())
			nonce, err := relayer.GetNonce(ctx)
			require.NoError(t, err)
			assert.Equal(t, uint64(1), nonce)

			// The caller's transaction keeps only the signature it was given.
			assert.Equal(t, 1, tx.SignatureCount())
		})
	}
}

func TestExecuteTransaction_SubmitterSignature(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 2, 2)
	ctx := t.Context()
	ownerA := f.connect(t, f.owners[0])
	ownerB := f.connect(t, f.owners[1])

	tx := newTransferTx(t, ownerA, 0)
	require.NoError(t, ownerA.AddSignature(ctx, tx, types.SigningMethodTypedData))

	_, err := ownerB.ExecuteTransaction(ctx, tx, types.TransactionOptions{})
	require.NoError(t, err)

	state, ok := f.chain.Safe(f.address)
	require.True(t, ok)
	assert.Equal(t, uint64(1), state.Nonce)
}

func TestExecuteTransaction_InsufficientSignatures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		signers     int
		wantMissing uint64
		wantErr     string
	}{
		{name: "no signatures", signers: 0, wantMissing: 3, wantErr: "there are 3 signatures missing"},
		{name: "one signature", signers: 1, wantMissing: 2, wantErr: "there are 2 signatures missing"},
		{name: "one short", signers: 2, wantMissing: 1, wantErr: "there is 1 signature missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, "1.3.0", 3, 3)
			ctx := t.Context()
			relayerAccount := f.chain.NewAccount()
			relayer := f.connect(t, relayerAccount)

			tx := newTransferTx(t, relayer, 0)
			for _, owner := range f.owners[:tt.signers] {
				require.NoError(t, f.connect(t, owner).AddSignature(ctx, tx, types.SigningMethodEthSign))
			}

			_, err := relayer.ExecuteTransaction(ctx, tx, types.TransactionOptions{})
			require.EqualError(t, err, tt.wantErr)
			require.ErrorIs(t, err, sdkerrors.ErrState)

			var insufficient *sdkerrors.InsufficientSignaturesError
			require.ErrorAs(t, err, &insufficient)
			assert.Equal(t, tt.wantMissing, insufficient.Missing())
			assert.Zero(t, relayerAccount.SentTransactions())
		})
	}
}

func TestExecuteTransaction_InsufficientFunds(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 1, 1)
	f.chain.Fund(f.address, big.NewInt(99))
	s := f.connect(t, f.owners[0])

	tx := newTransferTx(t, s, 100)

	_, err := s.ExecuteTransaction(t.Context(), tx, types.TransactionOptions{})
	require.EqualError(t, err, "not enough Ether funds: transaction value 100 exceeds Safe balance 99")
	require.ErrorIs(t, err, sdkerrors.ErrState)
	assert.Zero(t, f.owners[0].SentTransactions())
}

func TestExecuteTransaction_ConflictingOptions(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 1, 1)
	s := f.connect(t, f.owners[0])
	tx := newTransferTx(t, s, 0)

	_, err := s.ExecuteTransaction(t.Context(), tx, types.TransactionOptions{
		Gas:      ptr(uint64(300_000)),
		GasLimit: ptr(uint64(300_000)),
	})
	require.EqualError(t, err, "cannot specify gas and gasLimit together in transaction options")
	assert.Zero(t, f.owners[0].SentTransactions())

	_, err = s.ExecuteTransaction(t.Context(), tx, types.TransactionOptions{GasLimit: ptr(uint64(300_000))})
	require.NoError(t, err)

	sent, ok := f.owners[0].LastOptions()
	require.True(t, ok)
	assert.Equal(t, uint64(300_000), sent.GasLimitValue())
}

func TestExecuteTransaction_InnerCallFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version  string
		wantErr  string
		wantCode string
	}{
		// Before 1.3.0 the Safe reports the failure through an event.
		{version: "1.2.0", wantErr: "Safe transaction "},
		// 1.3.0 reverts when neither safeTxGas nor gasPrice is set.
		{version: "1.3.0", wantErr: "execution reverted: GS013", wantCode: "GS013"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, tt.version, 1, 1)
			s := f.connect(t, f.owners[0])

			// MultiSend only accepts delegatecalls, so a plain call to it fails inside the Safe.
			tx, err := s.CreateTransaction(t.Context(), types.SafeTransactionDataPartial{
				To:   f.contracts.MultiSendAddress,
				Data: []byte{0x8d, 0x80, 0xff, 0x0a},
			})
			require.NoError(t, err)

			_, err = s.ExecuteTransaction(t.Context(), tx, types.TransactionOptions{})
			require.ErrorContains(t, err, tt.wantErr)

			if tt.wantCode != "" {
				var execErr *evm.ExecutionError
				require.ErrorAs(t, err, &execErr)
				assert.Equal(t, tt.wantCode, execErr.RevertReason)
			}
		})
	}
}

func TestExecuteTransaction_ExecutionFailureError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.2.0", 1, 1)
	s := f.connect(t, f.owners[0])

	tx, err := s.CreateTransaction(t.Context(), types.SafeTransactionDataPartial{
		To: f.contracts.MultiSendAddress,
	})
	require.NoError(t, err)
	hash, err := s.GetTransactionHash(t.Context(), tx)
	require.NoError(t, err)

	result, err := s.ExecuteTransaction(t.Context(), tx, types.TransactionOptions{})
	require.ErrorIs(t, err, sdkerrors.ErrState)

	var failure *sdkerrors.ExecutionFailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, hash, failure.SafeTxHash)
	assert.Equal(t, result.Hash, failure.TxHash)

	// The failed Safe transaction still consumed its nonce.
	nonce, err := s.GetNonce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)
}
