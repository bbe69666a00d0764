package safe

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polywrap/safe-contracts-wrapper-sub000/internal/testutils"
	sdkerrors "github.com/polywrap/safe-contracts-wrapper-sub000/sdk/errors"
	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

func newTransferTx(t *testing.T, s *Safe, value int64) *types.SafeTransaction {
	t.Helper()

	tx, err := s.CreateTransaction(t.Context(), types.SafeTransactionDataPartial{
		To:    testRecipient,
		Value: big.NewInt(value),
		Data:  []byte{0x01, 0x02},
	})
	require.NoError(t, err)

	return tx
}

func TestTransactionHash_Parity(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"1.1.1", "1.2.0", "1.3.0"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, version, 2, 1)
			f.chain.SetNonce(f.address, 3)
			s := f.connect(t, f.owners[0])

			for _, value := range []int64{0, 1, 1_000_000} {
				tx := newTransferTx(t, s, value)

				onChain, err := s.GetTransactionHash(t.Context(), tx)
				require.NoError(t, err)
				offChain, err := s.ComputeTransactionHash(t.Context(), tx)
				require.NoError(t, err)

				assert.Equal(t, onChain, offChain)
				assert.Equal(t, f.chain.TransactionHash(f.address, tx.Data), onChain)
			}
		})
	}
}

func TestSignTransactionHash(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 2, 2)
	hash := common.HexToHash("0x1234")

	sig, err := f.connect(t, f.owners[1]).SignTransactionHash(t.Context(), hash)
	require.NoError(t, err)
	assert.Equal(t, f.owners[1].Address(), sig.Signer)

	recovered, err := evm.RecoverSigner(sig.Data, hash)
	require.NoError(t, err)
	assert.Equal(t, f.owners[1].Address(), recovered)

	outsider := f.chain.NewAccount()
	_, err = f.connect(t, outsider).SignTransactionHash(t.Context(), hash)
	require.EqualError(t, err, "transactions can only be signed by Safe owners: "+outsider.Address().Hex()+" is not an owner")
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)
}

func TestAddSignature(t *testing.T) {
	t.Parallel()

	for _, method := range []types.SigningMethod{types.SigningMethodEthSign, types.SigningMethodTypedData} {
		t.Run(string(method), func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, "1.3.0", 2, 2)
			first := f.connect(t, f.owners[0])
			second := f.connect(t, f.owners[1])
			ctx := t.Context()

			tx := newTransferTx(t, first, 0)
			hash, err := first.GetTransactionHash(ctx, tx)
			require.NoError(t, err)

			require.NoError(t, first.AddSignature(ctx, tx, method))
			sig, ok := first.GetSignature(tx, f.owners[0].Address())
			require.True(t, ok)

			recovered, err := evm.RecoverSigner(sig.Data, hash)
			require.NoError(t, err)
			assert.Equal(t, f.owners[0].Address(), recovered)

			// Signing again leaves the stored signature alone.
			require.NoError(t, first.AddSignature(ctx, tx, method))
			assert.Equal(t, 1, tx.SignatureCount())
			again, _ := first.GetSignature(tx, f.owners[0].Address())
			assert.Equal(t, sig, again)

			require.NoError(t, second.AddSignature(ctx, tx, method))
			assert.Equal(t, 2, tx.SignatureCount())

			_, ok = first.GetSignature(tx, testRecipient)
			assert.False(t, ok)
		})
	}
}

func TestAddSignature_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 1, 1)
	owner := f.connect(t, f.owners[0])
	tx := newTransferTx(t, owner, 0)

	err := owner.AddSignature(t.Context(), tx, types.SigningMethod("eth_signTypedData_v1"))
	require.EqualError(t, err, `unsupported signing method "eth_signTypedData_v1"`)

	outsider := f.chain.NewAccount()
	err = f.connect(t, outsider).AddSignature(t.Context(), tx, types.SigningMethodEthSign)
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)

	var notOwner *sdkerrors.NotOwnerError
	require.ErrorAs(t, err, &notOwner)
	assert.Equal(t, outsider.Address(), notOwner.Address)
	assert.Zero(t, tx.SignatureCount())
}

func TestSignTransaction(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 1, 1)
	s := f.connect(t, f.owners[0])
	tx := newTransferTx(t, s, 0)

	signed, err := s.SignTransaction(t.Context(), tx, types.SigningMethodTypedData)
	require.NoError(t, err)

	assert.Equal(t, 1, signed.SignatureCount())
	assert.Zero(t, tx.SignatureCount())
	assert.True(t, signed.Data.Equal(tx.Data))
}

func TestSignTypedData(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"1.2.0", "1.3.0"} {
		t.Run(version, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, version, 1, 1)
			s := f.connect(t, f.owners[0])
			tx := newTransferTx(t, s, 0)

			sig, err := s.SignTypedData(t.Context(), tx)
			require.NoError(t, err)
			assert.Contains(t, []byte{27, 28}, sig.Data[64])

			hash, err := s.ComputeTransactionHash(t.Context(), tx)
			require.NoError(t, err)
			recovered, err := evm.RecoverSigner(sig.Data, hash)
			require.NoError(t, err)
			assert.Equal(t, f.owners[0].Address(), recovered)
		})
	}
}

func TestApproveTransactionHash(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 3, 2)
	ctx := t.Context()
	approver := f.connect(t, f.owners[1])
	tx := newTransferTx(t, approver, 0)

	hash, err := approver.GetTransactionHash(ctx, tx)
	require.NoError(t, err)

	approvers, err := approver.GetOwnersWhoApprovedTx(ctx, hash)
	require.NoError(t, err)
	assert.Empty(t, approvers)

	result, err := approver.ApproveTransactionHash(ctx, hash, types.TransactionOptions{})
	require.NoError(t, err)
	require.NotNil(t, result.Receipt)
	require.Len(t, result.Receipt.Logs, 1)

	approvers, err = approver.GetOwnersWhoApprovedTx(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{f.owners[1].Address()}, approvers)

	_, err = f.connect(t, f.owners[2]).ApproveTransactionHash(ctx, hash, types.TransactionOptions{})
	require.NoError(t, err)

	approvers, err = approver.GetOwnersWhoApprovedTx(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{f.owners[1].Address(), f.owners[2].Address()}, approvers)
}

func TestApproveTransactionHash_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 1, 1)
	hash := common.HexToHash("0xabcd")

	outsider := f.chain.NewAccount()
	_, err := f.connect(t, outsider).ApproveTransactionHash(t.Context(), hash, types.TransactionOptions{})
	require.EqualError(t, err, "transaction hashes can only be approved by Safe owners: "+outsider.Address().Hex()+" is not an owner")
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)

	_, err = f.connect(t, f.owners[0]).ApproveTransactionHash(t.Context(), hash, types.TransactionOptions{
		Gas:      ptr(uint64(100_000)),
		GasLimit: ptr(uint64(100_000)),
	})
	require.ErrorIs(t, err, sdkerrors.ErrState)
	var conflict *sdkerrors.ConflictingOptionsError
	require.ErrorAs(t, err, &conflict)

	assert.Zero(t, outsider.SentTransactions())
	assert.Zero(t, f.owners[0].SentTransactions())
}

func TestCheckSignatures(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 3, 2)
	s := f.connect(t, f.owners[0])
	tx := newTransferTx(t, s, 0)
	require.NoError(t, s.AddSignature(t.Context(), tx, types.SigningMethodEthSign))

	hash, err := s.ComputeTransactionHash(t.Context(), tx)
	require.NoError(t, err)

	stranger := testutils.NewECDSASigner()
	tx.AddSignature(stranger.SignHash(hash))

	report, err := s.CheckSignatures(t.Context(), tx)
	require.NoError(t, err)
	assert.Equal(t, hash, report.Hash)
	assert.Equal(t, uint64(2), report.Threshold)
	assert.Equal(t, []common.Address{f.owners[0].Address()}, report.Owners)
	assert.Equal(t, []common.Address{stranger.Address()}, report.Invalid)
	assert.Equal(t, uint64(1), report.Missing())

	// a pre-validated marker without an on-chain approval does not count
	tx.AddSignature(types.NewPreValidatedSignature(f.owners[2].Address()))
	report, err = s.CheckSignatures(t.Context(), tx)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{f.owners[0].Address()}, report.Owners)
	assert.ElementsMatch(t, []common.Address{stranger.Address(), f.owners[2].Address()}, report.Invalid)
	assert.Equal(t, uint64(1), report.Missing())

	_, err = f.connect(t, f.owners[2]).ApproveTransactionHash(t.Context(), hash, types.TransactionOptions{})
	require.NoError(t, err)

	report, err = s.CheckSignatures(t.Context(), tx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []common.Address{f.owners[0].Address(), f.owners[2].Address()}, report.Owners)
	assert.Equal(t, []common.Address{stranger.Address()}, report.Invalid)
	assert.Zero(t, report.Missing())
}

func TestCheckSignatures_SubmitterMarker(t *testing.T) {
	t.Parallel()

	f := newFixture(t, "1.3.0", 3, 1)
	s := f.connect(t, f.owners[1])
	tx := newTransferTx(t, s, 0)
	tx.AddSignature(types.NewPreValidatedSignature(f.owners[1].Address()))

	report, err := s.CheckSignatures(t.Context(), tx)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{f.owners[1].Address()}, report.Owners)
	assert.Empty(t, report.Invalid)
	assert.Zero(t, report.Missing())

	report, err = f.connect(t, f.owners[0]).CheckSignatures(t.Context(), tx)
	require.NoError(t, err)
	assert.Empty(t, report.Owners)
	assert.Equal(t, []common.Address{f.owners[1].Address()}, report.Invalid)
	assert.Equal(t, uint64(1), report.Missing())
}
