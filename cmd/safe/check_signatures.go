package safe

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func buildCheckSignaturesCmd() *cobra.Command {
	var txPath string

	cmd := &cobra.Command{
		Use:   "check-signatures",
		Short: "Determines whether the signatures in a transaction file meet the Safe threshold",
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

			report, err := s.CheckSignatures(ctx, tx)
			if err != nil {
				fmt.Printf("Error checking signatures: %s\n", err)
				return err
			}

			approvers, err := s.GetOwnersWhoApprovedTx(ctx, report.Hash)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Signer", "Status"})
			for _, owner := range report.Owners {
				t.AppendRow(table.Row{owner.Hex(), successStyle.Sprint("valid")})
			}
			for _, signer := range report.Invalid {
				t.AppendRow(table.Row{signer.Hex(), failureStyle.Sprint("invalid")})
			}
			for _, owner := range approvers {
				t.AppendRow(table.Row{owner.Hex(), successStyle.Sprint("approved on-chain")})
			}
			t.Render()

			fmt.Printf("Safe transaction hash: %s\n", report.Hash.Hex())
			if report.Missing() == 0 {
				successStyle.Println("Signature threshold met!")
				return nil
			}

			failureStyle.Printf("Signature threshold not met: %d of %d\n", report.Threshold-report.Missing(), report.Threshold)

			return errors.New("signature threshold not met")
		},
	}

	cmd.Flags().StringVar(&txPath, "tx", "safe-tx.json", "Transaction file")

	return cmd
}
