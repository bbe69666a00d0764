package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testTo      = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testToken   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	testRefund  = common.HexToAddress("0x00000000000000000000000000000000000000cc")
	testSignerA = common.HexToAddress("0x1000000000000000000000000000000000000001")
	testSignerB = common.HexToAddress("0x2000000000000000000000000000000000000002")
	testSignerC = common.HexToAddress("0xA000000000000000000000000000000000000003")
)

func ptr[T any](v T) *T { return &v }

func TestStandardize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		partial SafeTransactionDataPartial
		sources []SafeTransactionOptionalProps
		want    SafeTransactionData
	}{
		{
			name:    "defaults",
			partial: SafeTransactionDataPartial{To: testTo},
			want: SafeTransactionData{
				To:        testTo,
				Value:     big.NewInt(0),
				Data:      []byte{},
				Operation: Call,
				SafeTxGas: big.NewInt(0),
				BaseGas:   big.NewInt(0),
				GasPrice:  big.NewInt(0),
			},
		},
		{
			name:    "source fills missing fields",
			partial: SafeTransactionDataPartial{To: testTo, Value: big.NewInt(5)},
			sources: []SafeTransactionOptionalProps{{
				SafeTxGas:      big.NewInt(1000),
				GasToken:       &testToken,
				RefundReceiver: &testRefund,
				Nonce:          ptr(uint64(3)),
			}},
			want: SafeTransactionData{
				To:             testTo,
				Value:          big.NewInt(5),
				Data:           []byte{},
				Operation:      Call,
				SafeTxGas:      big.NewInt(1000),
				BaseGas:        big.NewInt(0),
				GasPrice:       big.NewInt(0),
				GasToken:       testToken,
				RefundReceiver: testRefund,
				Nonce:          3,
			},
		},
		{
			name: "partial wins over sources",
			partial: SafeTransactionDataPartial{
				To:        testTo,
				Data:      []byte{0x01},
				Operation: ptr(DelegateCall),
				SafeTxGas: big.NewInt(7),
				Nonce:     ptr(uint64(9)),
			},
			sources: []SafeTransactionOptionalProps{
				{SafeTxGas: big.NewInt(1000), Nonce: ptr(uint64(3))},
				{BaseGas: big.NewInt(2), Nonce: ptr(uint64(4))},
			},
			want: SafeTransactionData{
				To:        testTo,
				Value:     big.NewInt(0),
				Data:      []byte{0x01},
				Operation: DelegateCall,
				SafeTxGas: big.NewInt(7),
				BaseGas:   big.NewInt(2),
				GasPrice:  big.NewInt(0),
				Nonce:     9,
			},
		},
		{
			name:    "first source wins over later ones",
			partial: SafeTransactionDataPartial{To: testTo},
			sources: []SafeTransactionOptionalProps{
				{},
				{Nonce: ptr(uint64(4))},
				{Nonce: ptr(uint64(5))},
			},
			want: SafeTransactionData{
				To:        testTo,
				Value:     big.NewInt(0),
				Data:      []byte{},
				SafeTxGas: big.NewInt(0),
				BaseGas:   big.NewInt(0),
				GasPrice:  big.NewInt(0),
				Nonce:     4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Standardize(tt.partial, tt.sources...)
			assert.True(t, tt.want.Equal(got), "got %+v", got)

			// Standardizing the output again is a no-op.
			again := Standardize(got.Partial(), tt.sources...)
			assert.True(t, got.Equal(again))
			assert.Empty(t, cmp.Diff(got.Data, again.Data))
		})
	}
}

func TestStandardize_DoesNotAlias(t *testing.T) {
	t.Parallel()

	value := big.NewInt(1)
	data := []byte{0x01}

	got := Standardize(SafeTransactionDataPartial{To: testTo, Value: value, Data: data})
	value.SetInt64(2)
	data[0] = 0x02

	assert.Equal(t, int64(1), got.Value.Int64())
	assert.Equal(t, []byte{0x01}, got.Data)
}

func TestSafeTransactionData_JSON(t *testing.T) {
	t.Parallel()

	d := SafeTransactionData{
		To:             testTo,
		Value:          new(big.Int).Lsh(big.NewInt(1), 100),
		Data:           []byte{0xde, 0xad},
		Operation:      DelegateCall,
		SafeTxGas:      big.NewInt(10),
		BaseGas:        big.NewInt(0),
		GasPrice:       big.NewInt(0),
		GasToken:       testToken,
		RefundReceiver: testRefund,
		Nonce:          12,
	}

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"value":"1267650600228229401496703205376"`)

	var got SafeTransactionData
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, d.Equal(got))

	err = json.Unmarshal([]byte(`{"value":"abc"}`), &got)
	require.EqualError(t, err, `invalid value: not an integer: "abc"`)

	err = json.Unmarshal([]byte(`{"operation":2}`), &got)
	require.EqualError(t, err, "invalid operation: 2")
}

func TestSafeTransaction_Signatures(t *testing.T) {
	t.Parallel()

	tx := NewSafeTransaction(Standardize(SafeTransactionDataPartial{To: testTo}))

	sigC := SafeSignature{Signer: testSignerC, Data: make([]byte, SignatureBytesLength)}
	sigA := NewPreValidatedSignature(testSignerA)
	sigB := NewPreValidatedSignature(testSignerB)

	tx.AddSignature(sigC)
	tx.AddSignature(sigB)
	tx.AddSignature(sigA)
	assert.Equal(t, 3, tx.SignatureCount())

	// Same signer in a different case replaces the earlier entry.
	replacement := SafeSignature{Signer: common.HexToAddress("0xa000000000000000000000000000000000000003"), Data: sigA.Data}
	tx.AddSignature(replacement)
	assert.Equal(t, 3, tx.SignatureCount())

	got, ok := tx.Signature(testSignerC)
	require.True(t, ok)
	assert.Equal(t, sigA.Data, got.Data)
	assert.True(t, tx.HasSignature(testSignerB))
	assert.False(t, tx.HasSignature(testTo))

	sigs := tx.Signatures()
	require.Len(t, sigs, 3)
	assert.Equal(t, testSignerA, sigs[0].Signer)
	assert.Equal(t, testSignerB, sigs[1].Signer)
	assert.Equal(t, testSignerC, sigs[2].Signer)

	encoded := tx.EncodedSignatures()
	require.Len(t, encoded, 3*SignatureBytesLength)
	assert.Equal(t, sigA.Data, encoded[:SignatureBytesLength])
	assert.Equal(t, sigB.Data, encoded[SignatureBytesLength:2*SignatureBytesLength])
}

func TestSafeTransaction_Clone(t *testing.T) {
	t.Parallel()

	tx := NewSafeTransaction(Standardize(SafeTransactionDataPartial{To: testTo, Value: big.NewInt(1)}))
	tx.AddSignature(NewPreValidatedSignature(testSignerA))

	clone := tx.Clone()
	clone.AddSignature(NewPreValidatedSignature(testSignerB))
	clone.Data.Value.SetInt64(99)

	assert.Equal(t, 1, tx.SignatureCount())
	assert.Equal(t, 2, clone.SignatureCount())
	assert.Equal(t, int64(1), tx.Data.Value.Int64())
}

func TestSafeTransaction_JSON(t *testing.T) {
	t.Parallel()

	tx := NewSafeTransaction(Standardize(SafeTransactionDataPartial{To: testTo, Nonce: ptr(uint64(2))}))
	tx.AddSignature(NewPreValidatedSignature(testSignerB))
	tx.AddSignature(NewPreValidatedSignature(testSignerA))

	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	var got SafeTransaction
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.True(t, tx.Data.Equal(got.Data))
	assert.Equal(t, tx.EncodedSignatures(), got.EncodedSignatures())
}
