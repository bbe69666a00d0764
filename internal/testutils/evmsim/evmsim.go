// Package evmsim runs the go-ethereum simulated backend behind an evm.Provider, so the provider
// is tested against a real JSON-RPC client surface.
package evmsim

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
)

const (
	// DefaultGasLimit is the default gas limit for each transaction in the simulated chain
	DefaultGasLimit = uint64(8000000)

	// DefaultBalance is the default balance for each account in the simulated chain
	DefaultBalance = 1e18

	// SimulatedChainID is the chain ID used for the simulated chain. EVM Simulated chains always use 1337
	//
	// https://pkg.go.dev/github.com/ethereum/go-ethereum/ethclient/simulated#NewBackend
	SimulatedChainID = 1337
)

// SimulatedChain is a simulated backend whose signers are funded with DefaultBalance.
type SimulatedChain struct {
	Backend *simulated.Backend
	Signers []*Signer
}

// Signer is a funded account of the simulated chain.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
}

// Address returns the account the signer controls.
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.PrivateKey.PublicKey)
}

// NewSimulatedChain creates a new simulated chain with the given number of signers.
func NewSimulatedChain(t *testing.T, numSigners uint64) SimulatedChain {
	t.Helper()

	signers := make([]*Signer, 0, numSigners)
	for range numSigners {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		signers = append(signers, &Signer{PrivateKey: key})
	}

	genesisAlloc := gethTypes.GenesisAlloc{}
	for _, s := range signers {
		genesisAlloc[s.Address()] = gethTypes.Account{
			Balance: big.NewInt(DefaultBalance),
		}
	}

	sim := simulated.NewBackend(genesisAlloc,
		simulated.WithBlockGasLimit(DefaultGasLimit),
	)
	t.Cleanup(func() {
		_ = sim.Close()
	})

	return SimulatedChain{
		Backend: sim,
		Signers: signers,
	}
}

// NewProvider returns an evm.Provider acting as signer. Every submitted transaction is mined
// immediately so SendTransaction does not block waiting for a block.
func (s *SimulatedChain) NewProvider(t *testing.T, signer *Signer) *evm.Provider {
	t.Helper()

	backend := &autoCommitClient{Client: s.Backend.Client(), backend: s.Backend}

	return evm.NewProvider(backend, evm.NewPrivateKeySigner(signer.PrivateKey), evm.WithRetry(1, 0))
}

// DeployCode deploys initCode with the signer and returns the new contract address.
func (s *SimulatedChain) DeployCode(t *testing.T, signer *Signer, initCode []byte) common.Address {
	t.Helper()

	ctx := context.Background()
	client := s.Backend.Client()
	from := signer.Address()

	nonce, err := client.PendingNonceAt(ctx, from)
	require.NoError(t, err)
	gasPrice, err := client.SuggestGasPrice(ctx)
	require.NoError(t, err)

	tx := gethTypes.NewContractCreation(nonce, big.NewInt(0), DefaultGasLimit, gasPrice, initCode)
	signed, err := gethTypes.SignTx(tx, gethTypes.LatestSignerForChainID(big.NewInt(SimulatedChainID)), signer.PrivateKey)
	require.NoError(t, err)
	require.NoError(t, client.SendTransaction(ctx, signed))

	// Mine a block
	s.Backend.Commit()

	receipt, err := client.TransactionReceipt(ctx, signed.Hash())
	require.NoError(t, err)
	require.Equal(t, gethTypes.ReceiptStatusSuccessful, receipt.Status)

	return receipt.ContractAddress
}

type autoCommitClient struct {
	simulated.Client
	backend *simulated.Backend
}

func (c *autoCommitClient) SendTransaction(ctx context.Context, tx *gethTypes.Transaction) error {
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.backend.Commit()

	return nil
}
