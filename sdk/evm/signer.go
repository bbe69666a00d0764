package evm

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/usbwallet"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Signer holds the key of the account a Provider acts for.
type Signer interface {
	Address() (common.Address, error)

	// SignText signs message with the EIP-191 personal message prefix.
	SignText(message []byte) ([]byte, error)

	// SignTypedData signs an EIP-712 payload.
	SignTypedData(typedData apitypes.TypedData) ([]byte, error)

	// SignTx signs an Ethereum transaction for chainID.
	SignTx(tx *gethtypes.Transaction, chainID *big.Int) (*gethtypes.Transaction, error)
}

var _ Signer = &PrivateKeySigner{}

// PrivateKeySigner signs with an in-memory private key.
type PrivateKeySigner struct {
	pk *ecdsa.PrivateKey
}

// NewPrivateKeySigner creates a new PrivateKeySigner.
func NewPrivateKeySigner(pk *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{pk: pk}
}

// NewPrivateKeySignerFromHex parses a hex private key, with or without 0x prefix.
func NewPrivateKeySignerFromHex(hexKey string) (*PrivateKeySigner, error) {
	if len(hexKey) > 1 && hexKey[:2] == "0x" {
		hexKey = hexKey[2:]
	}

	pk, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return NewPrivateKeySigner(pk), nil
}

func (s *PrivateKeySigner) Address() (common.Address, error) {
	return crypto.PubkeyToAddress(s.pk.PublicKey), nil
}

// SignText returns a signature with v in 0/1 form.
func (s *PrivateKeySigner) SignText(message []byte) ([]byte, error) {
	return crypto.Sign(accounts.TextHash(message), s.pk)
}

// SignTypedData returns a signature with v in 0/1 form.
func (s *PrivateKeySigner) SignTypedData(typedData apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}

	return crypto.Sign(hash, s.pk)
}

func (s *PrivateKeySigner) SignTx(tx *gethtypes.Transaction, chainID *big.Int) (*gethtypes.Transaction, error) {
	return gethtypes.SignTx(tx, gethtypes.LatestSignerForChainID(chainID), s.pk)
}

var _ Signer = &LedgerSigner{}

// LedgerSigner signs with the first Ledger found over USB.
type LedgerSigner struct {
	derivationPath accounts.DerivationPath
}

// NewLedgerSigner creates a new LedgerSigner.
func NewLedgerSigner(derivationPath []uint32) *LedgerSigner {
	return &LedgerSigner{derivationPath: derivationPath}
}

func (s *LedgerSigner) Address() (common.Address, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return common.Address{}, err
	}
	defer wallet.Close()

	return account.Address, nil
}

// SignText signs with EIP-191 on the device.
func (s *LedgerSigner) SignText(message []byte) ([]byte, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return nil, err
	}
	defer wallet.Close()

	sig, err := wallet.SignText(account, message)
	if errors.Is(err, accounts.ErrNotSupported) {
		return nil, fmt.Errorf("ledger cannot sign personal messages, sign with %s instead: %w", "eth_signTypedData", err)
	}

	return sig, err
}

// SignTypedData sends the domain separator and struct hash to the device, which displays and
// signs them.
func (s *LedgerSigner) SignTypedData(typedData apitypes.TypedData) ([]byte, error) {
	_, rawData, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}

	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return nil, err
	}
	defer wallet.Close()

	return wallet.SignData(account, accounts.MimetypeTypedData, []byte(rawData))
}

func (s *LedgerSigner) SignTx(tx *gethtypes.Transaction, chainID *big.Int) (*gethtypes.Transaction, error) {
	wallet, account, err := s.setupLedgerAccount()
	if err != nil {
		return nil, err
	}
	defer wallet.Close()

	return wallet.SignTx(account, tx, chainID)
}

// setupLedgerAccount loads the wallet and account from the ledger. Caller is responsible for
// closing the wallet.
func (s *LedgerSigner) setupLedgerAccount() (accounts.Wallet, accounts.Account, error) {
	ledgerhub, err := usbwallet.NewLedgerHub()
	if err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open ledger hub: %w", err)
	}

	wallets := ledgerhub.Wallets()
	if len(wallets) == 0 {
		return nil, accounts.Account{}, errors.New("no wallets found")
	}
	wallet := wallets[0]

	if err = wallet.Open(""); err != nil {
		return nil, accounts.Account{}, fmt.Errorf("failed to open wallet: %w", err)
	}

	account, err := wallet.Derive(s.derivationPath, true)
	if err != nil {
		wallet.Close() // Only close on error since caller won't be able to
		return nil, accounts.Account{}, fmt.Errorf("is your ledger ethereum app open? Failed to derive account: %w derivation path %v", err, s.derivationPath)
	}

	return wallet, account, nil
}
