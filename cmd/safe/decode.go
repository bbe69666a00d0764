package safe

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/polywrap/safe-contracts-wrapper-sub000/sdk/evm"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

func buildDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <calldata>",
		Short: "Decode Safe, proxy factory or MultiSend call data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hexutil.Decode(args[0])
			if err != nil {
				return fmt.Errorf("invalid call data: %w", err)
			}

			call, err := evm.DecodeCall(data)
			if err != nil {
				return err
			}

			if call.FunctionName == "multiSend" {
				batch, berr := evm.DecodeMultiSend(data)
				if berr != nil {
					return berr
				}
				headerStyle.Printf("multiSend with %d transactions\n", len(batch))
				renderBatch(batch)

				return nil
			}

			name, arguments, err := call.String()
			if err != nil {
				return err
			}
			headerStyle.Println(name)
			fmt.Println(arguments)

			return nil
		},
	}
}

func renderBatch(batch []types.MetaTransactionData) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Operation", "To", "Value", "Data"})
	for i, tx := range batch {
		op := types.Call
		if tx.Operation != nil {
			op = *tx.Operation
		}
		value := "0"
		if tx.Value != nil {
			value = tx.Value.String()
		}
		t.AppendRow(table.Row{i + 1, op, tx.To.Hex(), value, tx.Data.String()})
	}
	t.Render()
}
