package safe

import (
	"github.com/spf13/cobra"
)

func BuildSafeCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "safe",
		Short: "Deploy and operate Gnosis Safe multisig wallets",
		Long: `Deploy Safe proxies, build Safe transactions, collect owner signatures and execute them.

Connection settings come from flags or the environment. A .env file in the working directory is
loaded first; PRIVATE_KEY holds the signing key and RPC_URL (or RPC_URL_<selector>) the endpoint.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String(rpcURLKey, "", "RPC endpoint of the chain to connect to")
	flags.Uint64(selectorKey, 0, "Chain selector of the chain to connect to")
	flags.String(safeKey, "", "Address of the Safe to operate on")
	flags.String(safeVersionKey, "", "Safe contract version; read from the Safe when empty")
	flags.String(networksKey, "", "TOML file with contract addresses for chains missing from the registry")
	flags.Bool(l1Key, false, "Deploy with the L1 Safe master copy instead of the L2 one")
	flags.Bool(ledgerKey, false, "Sign with a Ledger instead of PRIVATE_KEY")
	flags.String(derivationPathKey, defaultDerivationPath, "The derivation path for the ledger")
	flags.BoolP(verboseKey, "v", false, "Enable debug logging")

	cmd.AddCommand(buildInfoCmd())
	cmd.AddCommand(buildPredictCmd())
	cmd.AddCommand(buildDeployCmd())
	cmd.AddCommand(buildCreateTxCmd())
	cmd.AddCommand(buildSignCmd())
	cmd.AddCommand(buildApproveCmd())
	cmd.AddCommand(buildCheckSignaturesCmd())
	cmd.AddCommand(buildExecuteCmd())
	cmd.AddCommand(buildDecodeCmd())

	return &cmd
}
