package safe

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// txFlags describe a single Safe transaction on the command line.
type txFlags struct {
	to           string
	value        string
	data         string
	delegateCall bool
	nonce        int64
	safeTxGas    string
	batch        string
	onlyCalls    bool
}

func (f txFlags) partial() (types.SafeTransactionDataPartial, error) {
	if !common.IsHexAddress(f.to) {
		return types.SafeTransactionDataPartial{}, fmt.Errorf("invalid recipient %q", f.to)
	}

	value, err := parseBigInt("value", f.value)
	if err != nil {
		return types.SafeTransactionDataPartial{}, err
	}

	partial := types.SafeTransactionDataPartial{To: common.HexToAddress(f.to), Value: value}
	if f.data != "" {
		if partial.Data, err = hexutil.Decode(f.data); err != nil {
			return types.SafeTransactionDataPartial{}, fmt.Errorf("invalid call data: %w", err)
		}
	}
	if f.delegateCall {
		op := types.DelegateCall
		partial.Operation = &op
	}

	return partial, nil
}

// optionalProps carries the nonce and safeTxGas overrides, which apply to batches too.
func (f txFlags) optionalProps() (types.SafeTransactionOptionalProps, error) {
	var props types.SafeTransactionOptionalProps
	if f.nonce >= 0 {
		nonce := uint64(f.nonce)
		props.Nonce = &nonce
	}

	safeTxGas, err := parseBigInt("safeTxGas", f.safeTxGas)
	if err != nil {
		return props, err
	}
	props.SafeTxGas = safeTxGas

	return props, nil
}

func readBatch(path string) ([]types.MetaTransactionData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch []types.MetaTransactionData
	if err := json.Unmarshal(b, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file %s: %w", path, err)
	}

	return batch, nil
}

func buildCreateTxCmd() *cobra.Command {
	var (
		flags txFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "create-tx",
		Short: "Build a Safe transaction and write it to a file",
		Long: `Build a Safe transaction for the Safe given by --safe. Either describe one call with --to,
--value, --data and --delegate-call, or pass --batch with a JSON array of {to, value, data,
operation} entries to bundle them through MultiSend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := flags.optionalProps()
			if err != nil {
				return err
			}

			ctx, sess, err := connect(cmd)
			if err != nil {
				return err
			}

			s, err := sess.loadSafe(ctx)
			if err != nil {
				return err
			}

			var tx *types.SafeTransaction
			switch {
			case flags.batch != "":
				batch, berr := readBatch(flags.batch)
				if berr != nil {
					return berr
				}
				tx, err = s.CreateMultiSendTransaction(ctx, batch, flags.onlyCalls, props)
			case flags.to != "":
				partial, perr := flags.partial()
				if perr != nil {
					return perr
				}
				tx, err = s.CreateTransaction(ctx, partial, props)
			default:
				return errors.New("either --to or --batch is required")
			}
			if err != nil {
				return err
			}

			hash, err := s.GetTransactionHash(ctx, tx)
			if err != nil {
				return err
			}

			if err := writeTransaction(out, tx); err != nil {
				return err
			}
			fmt.Printf("Safe transaction %s (nonce %d) written to %s\n", hash.Hex(), tx.Data.Nonce, out)

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.to, "to", "", "Recipient of the call")
	cmd.Flags().StringVar(&flags.value, "value", "", "Wei sent with the call")
	cmd.Flags().StringVar(&flags.data, "data", "", "Hex encoded call data")
	cmd.Flags().BoolVar(&flags.delegateCall, "delegate-call", false, "Execute as a delegatecall")
	cmd.Flags().Int64Var(&flags.nonce, "nonce", -1, "Safe nonce; the current nonce when negative")
	cmd.Flags().StringVar(&flags.safeTxGas, "safe-tx-gas", "", "Gas reserved for the inner call")
	cmd.Flags().StringVar(&flags.batch, "batch", "", "JSON file with calls to bundle through MultiSend")
	cmd.Flags().BoolVar(&flags.onlyCalls, "only-calls", false, "Use MultiSendCallOnly for the batch")
	cmd.Flags().StringVar(&out, "out", "safe-tx.json", "File the transaction is written to")

	return cmd
}

func buildSignCmd() *cobra.Command {
	var (
		txPath string
		method string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Add the connected owner's signature to a transaction file",
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := readTransaction(txPath)
			if err != nil {
				return err
			}

			ctx, sess, err := connect(cmd)
			if err != nil {
				return err
			}

			s, err := sess.loadSafe(ctx)
			if err != nil {
				return err
			}

			if err := s.AddSignature(ctx, tx, types.SigningMethod(method)); err != nil {
				fmt.Printf("Error signing transaction: %s\n", err)
				return err
			}

			if err := writeTransaction(txPath, tx); err != nil {
				return err
			}
			fmt.Printf("Transaction now carries %d signature(s)\n", tx.SignatureCount())

			return nil
		},
	}

	cmd.Flags().StringVar(&txPath, "tx", "safe-tx.json", "Transaction file")
	cmd.Flags().StringVar(&method, "method", string(types.SigningMethodTypedData), "Signing method: eth_sign or eth_signTypedData")

	return cmd
}

func buildApproveCmd() *cobra.Command {
	var (
		txPath   string
		gasLimit uint64
	)

	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve the hash of a transaction file on-chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := readTransaction(txPath)
			if err != nil {
				return err
			}

			ctx, sess, err := connect(cmd)
			if err != nil {
				return err
			}

			s, err := sess.loadSafe(ctx)
			if err != nil {
				return err
			}

			hash, err := s.GetTransactionHash(ctx, tx)
			if err != nil {
				return err
			}

			result, err := s.ApproveTransactionHash(ctx, hash, transactionOptions(gasLimit))
			if err != nil {
				return err
			}
			successStyle.Printf("Approved %s in transaction %s\n", hash.Hex(), result.Hash.Hex())

			return nil
		},
	}

	cmd.Flags().StringVar(&txPath, "tx", "safe-tx.json", "Transaction file")
	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", 0, "Gas limit of the approval; estimated when 0")

	return cmd
}

func buildExecuteCmd() *cobra.Command {
	var (
		txPath   string
		gasLimit uint64
	)

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Execute a transaction file once it has enough confirmations",
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := readTransaction(txPath)
			if err != nil {
				return err
			}

			ctx, sess, err := connect(cmd)
			if err != nil {
				return err
			}

			s, err := sess.loadSafe(ctx)
			if err != nil {
				return err
			}

			result, err := s.ExecuteTransaction(ctx, tx, transactionOptions(gasLimit))
			if err != nil {
				failureStyle.Printf("Execution failed: %s\n", err)
				return err
			}
			successStyle.Printf("Executed in transaction %s\n", result.Hash.Hex())

			return nil
		},
	}

	cmd.Flags().StringVar(&txPath, "tx", "safe-tx.json", "Transaction file")
	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", 0, "Gas limit of the execution; estimated when 0")

	return cmd
}
