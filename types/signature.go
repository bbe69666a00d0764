package types

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SignatureBytesLength defines the length of the signature in bytes after summing the byte
	// values of R, S, and V.
	SignatureBytesLength = 65

	// SignatureComponentSize defines the size of each signature component (R and S) in bytes.
	SignatureComponentSize = 32

	// SignatureVOffset defines the offset to adjust the recovery id (v) if needed.
	SignatureVOffset = 27

	// SignatureEthSignVOffset is added on top of 27/28 for signatures over an EIP-191 prefixed
	// hash. The Safe contract treats v > 30 as "recover from the prefixed hash with v - 4".
	SignatureEthSignVOffset = 4

	// PreValidatedSignatureV marks a signature whose r word holds an owner address approved through
	// msg.sender or approveHash.
	PreValidatedSignatureV = 1
)

// SigningMethod selects how an owner signs a Safe transaction off-chain.
type SigningMethod string

const (
	// SigningMethodEthSign signs the Safe transaction hash as an EIP-191 personal message.
	SigningMethodEthSign SigningMethod = "eth_sign"

	// SigningMethodTypedData signs the EIP-712 SafeTx structure.
	SigningMethodTypedData SigningMethod = "eth_signTypedData"
)

// Signature represents an signature that has been signed by a private key.
type Signature struct {
	R common.Hash
	S common.Hash
	V uint8
}

// NewSignatureFromBytes creates a new Signature from a byte slice of concatenated R, S, and V
// values.
func NewSignatureFromBytes(sig []byte) (Signature, error) {
	if len(sig) != SignatureBytesLength {
		return Signature{}, fmt.Errorf("invalid signature length: %d", len(sig))
	}

	return Signature{
		R: common.BytesToHash(sig[:SignatureComponentSize]),
		S: common.BytesToHash(sig[SignatureComponentSize:(SignatureBytesLength - 1)]),
		V: sig[SignatureBytesLength-1],
	}, nil
}

// ToBytes returns the byte representation of the signature.
func (s Signature) ToBytes() []byte {
	return slices.Concat(
		s.R.Bytes(),
		s.S.Bytes(),
		[]byte{s.V},
	)
}

// Recover returns the address recovered from the signature and the message hash
func (s Signature) Recover(hash common.Hash) (common.Address, error) {
	// Recover the public key from the signature and the message hash
	pubKey, err := s.RecoverPublicKey(hash)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}

	// Derive the (recovered) Ethereum address from the public key
	return crypto.PubkeyToAddress(*pubKey), nil
}

// RecoverPublicKey returns the public key recovered from the signature and the message hash.
// V may be in either the 0/1 or the 27/28 form.
func (s Signature) RecoverPublicKey(hash common.Hash) (*ecdsa.PublicKey, error) {
	sig := s.ToBytes()

	// crypto.SigToPub expects 0 or 1.
	if sig[SignatureBytesLength-1] >= SignatureVOffset {
		sig[SignatureBytesLength-1] -= SignatureVOffset
	}

	return crypto.SigToPub(hash.Bytes(), sig)
}

// SafeSignature is a signature attributed to a Safe owner. Data is the 65-byte r||s||v blob in
// the layout the Safe contract decodes, which for pre-validated signatures is not an ECDSA
// signature at all.
type SafeSignature struct {
	Signer common.Address
	Data   []byte
}

// NewPreValidatedSignature builds the signature the Safe contract accepts for an owner that is
// either the transaction submitter or has approved the hash on-chain: r is the owner address
// left-padded to 32 bytes, s is zero and v is 1.
func NewPreValidatedSignature(owner common.Address) SafeSignature {
	return SafeSignature{
		Signer: owner,
		Data: Signature{
			R: common.BytesToHash(owner.Bytes()),
			S: common.Hash{},
			V: PreValidatedSignatureV,
		}.ToBytes(),
	}
}

// IsPreValidated reports whether the signature is a pre-validated marker rather than ECDSA.
func (s SafeSignature) IsPreValidated() bool {
	return len(s.Data) == SignatureBytesLength && s.Data[SignatureBytesLength-1] == PreValidatedSignatureV
}

// Hex returns the 0x-prefixed hex form of the signature data.
func (s SafeSignature) Hex() string {
	return hexutil.Encode(s.Data)
}

type safeSignatureJSON struct {
	Signer common.Address `json:"signer"`
	Data   hexutil.Bytes  `json:"data"`
}

func (s SafeSignature) MarshalJSON() ([]byte, error) {
	return json.Marshal(safeSignatureJSON{Signer: s.Signer, Data: s.Data})
}

func (s *SafeSignature) UnmarshalJSON(data []byte) error {
	var raw safeSignatureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Data) != SignatureBytesLength {
		return fmt.Errorf("invalid signature length: %d", len(raw.Data))
	}
	s.Signer = raw.Signer
	s.Data = raw.Data

	return nil
}
