package types

import (
	"encoding/json"
	"fmt"
	"maps"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SafeTransactionData is the canonical, fully populated form of a Safe transaction. Its fields are
// exactly the ten arguments of the Safe's getTransactionHash and execTransaction methods, in the
// same order.
type SafeTransactionData struct {
	To             common.Address
	Value          *big.Int
	Data           []byte
	Operation      OperationType
	SafeTxGas      *big.Int
	BaseGas        *big.Int
	GasPrice       *big.Int
	GasToken       common.Address
	RefundReceiver common.Address
	Nonce          uint64
}

// SafeTransactionDataPartial is caller input where every field may be absent. A nil pointer (or a
// nil Data slice) means the field was not provided.
type SafeTransactionDataPartial struct {
	To             common.Address
	Value          *big.Int
	Data           []byte
	Operation      *OperationType
	SafeTxGas      *big.Int
	BaseGas        *big.Int
	GasPrice       *big.Int
	GasToken       *common.Address
	RefundReceiver *common.Address
	Nonce          *uint64
}

// SafeTransactionOptionalProps are fallback values for the fields a caller commonly leaves out.
// They never override a value present on the partial transaction.
type SafeTransactionOptionalProps struct {
	SafeTxGas      *big.Int
	BaseGas        *big.Int
	GasPrice       *big.Int
	GasToken       *common.Address
	RefundReceiver *common.Address
	Nonce          *uint64
}

// MetaTransactionData is one element of a MultiSend batch.
type MetaTransactionData struct {
	To        common.Address `json:"to"`
	Value     *big.Int       `json:"value"`
	Data      hexutil.Bytes  `json:"data"`
	Operation *OperationType `json:"operation,omitempty"`
}

// Standardize completes a partial transaction. For every field the value on partial wins, then
// the first source that carries it, then the type default. Applying it to its own output (via
// Partial) returns an equal value.
func Standardize(partial SafeTransactionDataPartial, sources ...SafeTransactionOptionalProps) SafeTransactionData {
	pick := func(get func(SafeTransactionOptionalProps) *big.Int, own *big.Int) *big.Int {
		return copyBig(firstNonNil(own, collect(sources, get)...))
	}

	op := Call
	if partial.Operation != nil {
		op = *partial.Operation
	}

	data := []byte{}
	if partial.Data != nil {
		data = slices.Clone(partial.Data)
	}

	gasToken := firstNonNil(partial.GasToken, collect(sources, func(s SafeTransactionOptionalProps) *common.Address { return s.GasToken })...)
	refundReceiver := firstNonNil(partial.RefundReceiver, collect(sources, func(s SafeTransactionOptionalProps) *common.Address { return s.RefundReceiver })...)
	nonce := firstNonNil(partial.Nonce, collect(sources, func(s SafeTransactionOptionalProps) *uint64 { return s.Nonce })...)

	return SafeTransactionData{
		To:             partial.To,
		Value:          copyBig(partial.Value),
		Data:           data,
		Operation:      op,
		SafeTxGas:      pick(func(s SafeTransactionOptionalProps) *big.Int { return s.SafeTxGas }, partial.SafeTxGas),
		BaseGas:        pick(func(s SafeTransactionOptionalProps) *big.Int { return s.BaseGas }, partial.BaseGas),
		GasPrice:       pick(func(s SafeTransactionOptionalProps) *big.Int { return s.GasPrice }, partial.GasPrice),
		GasToken:       derefOr(gasToken, ZeroAddress),
		RefundReceiver: derefOr(refundReceiver, ZeroAddress),
		Nonce:          derefOr(nonce, 0),
	}
}

// Partial converts the transaction back into partial form with every field present.
func (d SafeTransactionData) Partial() SafeTransactionDataPartial {
	op := d.Operation
	gasToken := d.GasToken
	refundReceiver := d.RefundReceiver
	nonce := d.Nonce

	return SafeTransactionDataPartial{
		To:             d.To,
		Value:          copyBig(d.Value),
		Data:           slices.Clone(d.Data),
		Operation:      &op,
		SafeTxGas:      copyBig(d.SafeTxGas),
		BaseGas:        copyBig(d.BaseGas),
		GasPrice:       copyBig(d.GasPrice),
		GasToken:       &gasToken,
		RefundReceiver: &refundReceiver,
		Nonce:          &nonce,
	}
}

// Equal reports whether two transactions encode to the same call data.
func (d SafeTransactionData) Equal(other SafeTransactionData) bool {
	return d.To == other.To &&
		bigEqual(d.Value, other.Value) &&
		slices.Equal(d.Data, other.Data) &&
		d.Operation == other.Operation &&
		bigEqual(d.SafeTxGas, other.SafeTxGas) &&
		bigEqual(d.BaseGas, other.BaseGas) &&
		bigEqual(d.GasPrice, other.GasPrice) &&
		d.GasToken == other.GasToken &&
		d.RefundReceiver == other.RefundReceiver &&
		d.Nonce == other.Nonce
}

type safeTransactionDataJSON struct {
	To             common.Address `json:"to"`
	Value          string         `json:"value"`
	Data           hexutil.Bytes  `json:"data"`
	Operation      OperationType  `json:"operation"`
	SafeTxGas      string         `json:"safeTxGas"`
	BaseGas        string         `json:"baseGas"`
	GasPrice       string         `json:"gasPrice"`
	GasToken       common.Address `json:"gasToken"`
	RefundReceiver common.Address `json:"refundReceiver"`
	Nonce          uint64         `json:"nonce"`
}

// MarshalJSON writes amounts as decimal strings, the form used by the Safe transaction service.
func (d SafeTransactionData) MarshalJSON() ([]byte, error) {
	return json.Marshal(safeTransactionDataJSON{
		To:             d.To,
		Value:          bigString(d.Value),
		Data:           d.Data,
		Operation:      d.Operation,
		SafeTxGas:      bigString(d.SafeTxGas),
		BaseGas:        bigString(d.BaseGas),
		GasPrice:       bigString(d.GasPrice),
		GasToken:       d.GasToken,
		RefundReceiver: d.RefundReceiver,
		Nonce:          d.Nonce,
	})
}

// UnmarshalJSON parses the decimal string amounts written by MarshalJSON.
func (d *SafeTransactionData) UnmarshalJSON(data []byte) error {
	var raw safeTransactionDataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		name string
		in   string
		out  **big.Int
	}{
		{"value", raw.Value, &d.Value},
		{"safeTxGas", raw.SafeTxGas, &d.SafeTxGas},
		{"baseGas", raw.BaseGas, &d.BaseGas},
		{"gasPrice", raw.GasPrice, &d.GasPrice},
	}
	for _, f := range fields {
		v, err := parseBig(f.in)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.out = v
	}

	d.To = raw.To
	d.Data = []byte(raw.Data)
	if d.Data == nil {
		d.Data = []byte{}
	}
	d.Operation = raw.Operation
	d.GasToken = raw.GasToken
	d.RefundReceiver = raw.RefundReceiver
	d.Nonce = raw.Nonce

	return nil
}

// SafeTransaction is a transaction together with the signatures collected for it. The signature
// map is owned by this value: Clone before handing a transaction to code that adds signatures if
// the original must stay untouched.
type SafeTransaction struct {
	Data       SafeTransactionData
	signatures map[string]SafeSignature
}

// NewSafeTransaction creates an unsigned transaction.
func NewSafeTransaction(data SafeTransactionData) *SafeTransaction {
	return &SafeTransaction{
		Data:       data,
		signatures: make(map[string]SafeSignature),
	}
}

// AddSignature stores sig under its signer. A second signature for the same signer replaces the
// first (last write wins).
func (t *SafeTransaction) AddSignature(sig SafeSignature) {
	if t.signatures == nil {
		t.signatures = make(map[string]SafeSignature)
	}
	t.signatures[NormalizeAddress(sig.Signer)] = sig
}

// Signature returns the signature stored for signer, if any.
func (t *SafeTransaction) Signature(signer common.Address) (SafeSignature, bool) {
	sig, ok := t.signatures[NormalizeAddress(signer)]
	return sig, ok
}

// HasSignature reports whether signer already signed.
func (t *SafeTransaction) HasSignature(signer common.Address) bool {
	_, ok := t.signatures[NormalizeAddress(signer)]
	return ok
}

// SignatureCount returns the number of distinct signers.
func (t *SafeTransaction) SignatureCount() int {
	return len(t.signatures)
}

// Signatures returns the collected signatures sorted by signer address.
func (t *SafeTransaction) Signatures() []SafeSignature {
	keys := slices.Sorted(maps.Keys(t.signatures))
	sigs := make([]SafeSignature, 0, len(keys))
	for _, k := range keys {
		sigs = append(sigs, t.signatures[k])
	}

	return sigs
}

// EncodedSignatures concatenates the signatures in ascending signer order, the layout the Safe
// contract's checkSignatures expects.
func (t *SafeTransaction) EncodedSignatures() []byte {
	sigs := t.Signatures()
	out := make([]byte, 0, len(sigs)*SignatureBytesLength)
	for _, sig := range sigs {
		out = append(out, sig.Data...)
	}

	return out
}

// Clone returns a deep copy that shares no mutable state with t.
func (t *SafeTransaction) Clone() *SafeTransaction {
	clone := NewSafeTransaction(Standardize(t.Data.Partial()))
	for k, sig := range t.signatures {
		clone.signatures[k] = SafeSignature{Signer: sig.Signer, Data: slices.Clone(sig.Data)}
	}

	return clone
}

type safeTransactionJSON struct {
	Data       SafeTransactionData `json:"data"`
	Signatures []SafeSignature     `json:"signatures"`
}

// MarshalJSON writes the transaction and its signatures in signer order.
func (t *SafeTransaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(safeTransactionJSON{
		Data:       t.Data,
		Signatures: t.Signatures(),
	})
}

// UnmarshalJSON reads a transaction written by MarshalJSON. Duplicate signers collapse to the last
// entry.
func (t *SafeTransaction) UnmarshalJSON(data []byte) error {
	var raw safeTransactionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.Data = raw.Data
	t.signatures = make(map[string]SafeSignature, len(raw.Signatures))
	for _, sig := range raw.Signatures {
		t.AddSignature(sig)
	}

	return nil
}

func firstNonNil[T any](first *T, rest ...*T) *T {
	if first != nil {
		return first
	}
	for _, v := range rest {
		if v != nil {
			return v
		}
	}

	return nil
}

func collect[T any](sources []SafeTransactionOptionalProps, get func(SafeTransactionOptionalProps) *T) []*T {
	out := make([]*T, 0, len(sources))
	for _, s := range sources {
		out = append(out, get(s))
	}

	return out
}

func derefOr[T any](v *T, def T) T {
	if v == nil {
		return def
	}

	return *v
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(v)
}

func bigEqual(a, b *big.Int) bool {
	return copyBig(a).Cmp(copyBig(b)) == 0
}

func bigString(v *big.Int) string {
	return copyBig(v).String()
}

func parseBig(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}

	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", s)
	}

	return v, nil
}
