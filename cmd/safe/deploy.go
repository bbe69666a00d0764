package safe

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	safe "github.com/polywrap/safe-contracts-wrapper-sub000"
	"github.com/polywrap/safe-contracts-wrapper-sub000/types"
)

// deploymentFlags are the Safe setup parameters shared by predict and deploy.
type deploymentFlags struct {
	owners          []string
	threshold       uint64
	saltNonce       string
	fallbackHandler string
}

func (f *deploymentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.owners, "owners", nil, "Comma separated owner addresses")
	cmd.Flags().Uint64Var(&f.threshold, "threshold", 1, "Number of owner confirmations required")
	cmd.Flags().StringVar(&f.saltNonce, "salt-nonce", "", "Decimal salt nonce; 0 when empty")
	cmd.Flags().StringVar(&f.fallbackHandler, "fallback-handler", "", "Fallback handler; the version's default when empty")
	_ = cmd.MarkFlagRequired("owners")
}

func (f *deploymentFlags) config() (types.SafeDeploymentConfig, error) {
	owners, err := parseAddresses(f.owners)
	if err != nil {
		return types.SafeDeploymentConfig{}, err
	}

	cfg := types.SafeDeploymentConfig{
		SafeAccountConfig: types.SafeAccountConfig{
			Owners:    owners,
			Threshold: f.threshold,
		},
		SaltNonce: f.saltNonce,
	}

	if f.fallbackHandler != "" {
		if !common.IsHexAddress(f.fallbackHandler) {
			return types.SafeDeploymentConfig{}, fmt.Errorf("invalid fallback handler %q", f.fallbackHandler)
		}
		handler := common.HexToAddress(f.fallbackHandler)
		cfg.SafeAccountConfig.FallbackHandler = &handler
	}

	return cfg, nil
}

func buildPredictCmd() *cobra.Command {
	var flags deploymentFlags

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Compute the address a Safe deployment would land on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}

			ctx, sess, err := connect(cmd)
			if err != nil {
				return err
			}

			factory, err := safe.NewSafeFactory(ctx, sess.provider, sess.options()...)
			if err != nil {
				return err
			}

			address, err := factory.PredictSafeAddress(ctx, cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Predicted Safe %s address: %s\n", factory.Version(), address.Hex())

			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

func buildDeployCmd() *cobra.Command {
	var (
		flags    deploymentFlags
		gasLimit uint64
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a new Safe proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}

			ctx, sess, err := connect(cmd)
			if err != nil {
				return err
			}

			factory, err := safe.NewSafeFactory(ctx, sess.provider, sess.options()...)
			if err != nil {
				return err
			}

			s, err := factory.DeploySafe(ctx, cfg, transactionOptions(gasLimit))
			if err != nil {
				fmt.Printf("Error deploying Safe: %s\n", err)
				return err
			}

			successStyle.Printf("Deployed Safe %s at %s\n", s.Version(), s.Address().Hex())

			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", 0, "Gas limit of the deployment transaction; estimated when 0")

	return cmd
}

// transactionOptions leaves the gas limit unset when it is 0 so the provider estimates it.
func transactionOptions(gasLimit uint64) types.TransactionOptions {
	var opts types.TransactionOptions
	if gasLimit != 0 {
		opts.GasLimit = &gasLimit
	}

	return opts
}
