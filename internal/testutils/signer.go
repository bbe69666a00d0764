package testutils

import (
	"bytes"
	"crypto/ecdsa"
	"slices"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// Note: should only be used for testing purposes
type ECDSASigner struct {
	Key *ecdsa.PrivateKey
}

func NewECDSASigner() *ECDSASigner {
	key, _ := crypto.GenerateKey()
	return &ECDSASigner{Key: key}
}

func (s *ECDSASigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.Key.PublicKey)
}

// SignHash signs hash directly and returns r||s||v with v in 27/28 form, as an
// eth_signTypedData signature over a Safe transaction hash looks.
func (s *ECDSASigner) SignHash(hash common.Hash) types.SafeSignature {
	sig, err := crypto.Sign(hash.Bytes(), s.Key)
	if err != nil {
		panic(err)
	}
	sig[crypto.RecoveryIDOffset] += types.SignatureVOffset

	return types.SafeSignature{Signer: s.Address(), Data: sig}
}

// EthSignHash signs hash as a personal message and returns the signature with v in 31/32 form,
// the layout the Safe contract expects for eth_sign.
func (s *ECDSASigner) EthSignHash(hash common.Hash) types.SafeSignature {
	sig, err := crypto.Sign(accounts.TextHash(hash.Bytes()), s.Key)
	if err != nil {
		panic(err)
	}
	sig[crypto.RecoveryIDOffset] += types.SignatureVOffset + types.SignatureEthSignVOffset

	return types.SafeSignature{Signer: s.Address(), Data: sig}
}

// MakeNewECDSASigners returns n signers sorted by ascending address, the order Safe signatures are
// checked in.
func MakeNewECDSASigners(n int) []ECDSASigner {
	signers := make([]ECDSASigner, n)
	for i := range n {
		signers[i] = *NewECDSASigner()
	}
	slices.SortFunc(signers, func(a, b ECDSASigner) int {
		return bytes.Compare(a.Address().Bytes(), b.Address().Bytes())
	})

	return signers
}

// Addresses returns the signer addresses in order.
func Addresses(signers []ECDSASigner) []common.Address {
	out := make([]common.Address, len(signers))
	for i := range signers {
		out[i] = signers[i].Address()
	}

	return out
}
