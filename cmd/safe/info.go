package safe

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	successStyle = color.New(color.FgGreen)
	failureStyle = color.New(color.FgRed)
	faintStyle   = color.New(color.Faint)
)

func buildInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the owners, threshold, nonce and modules of a Safe",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sess, err := connect(cmd)
			if err != nil {
				return err
			}

			s, err := sess.loadSafe(ctx)
			if err != nil {
				return err
			}

			owners, err := s.GetOwners(ctx)
			if err != nil {
				return err
			}
			threshold, err := s.GetThreshold(ctx)
			if err != nil {
				return err
			}
			nonce, err := s.GetNonce(ctx)
			if err != nil {
				return err
			}
			balance, err := s.GetBalance(ctx)
			if err != nil {
				return err
			}
			modules, err := s.GetModules(ctx)
			if err != nil {
				return err
			}

			headerStyle.Printf("Safe %s\n", s.Address().Hex())
			fmt.Printf("Version:   %s\n", s.Version())
			fmt.Printf("Chain ID:  %s\n", sess.chainID)
			fmt.Printf("Nonce:     %d\n", nonce)
			fmt.Printf("Balance:   %s wei\n", balance)
			fmt.Printf("Threshold: %d of %d\n\n", threshold, len(owners))

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Owner"})
			for i, owner := range owners {
				t.AppendRow(table.Row{i + 1, owner.Hex()})
			}
			t.Render()

			if len(modules) == 0 {
				faintStyle.Println("No modules enabled")
				return nil
			}

			fmt.Println()
			mt := table.NewWriter()
			mt.SetOutputMirror(os.Stdout)
			mt.SetStyle(table.StyleLight)
			mt.AppendHeader(table.Row{"#", "Module"})
			for i, module := range modules {
				mt.AppendRow(table.Row{i + 1, module.Hex()})
			}
			mt.Render()

			return nil
		},
	}
}
