package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/app"
)

// addressArg returns the address given on the command line or the wallet's own.
func addressArg(a *app.Application, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return a.Address()
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show staked balances of an address",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			address, err := addressArg(a, args)
			if err != nil {
				return err
			}
			balances, err := a.LOCK.Balances(ctx, address)
			if err != nil {
				return err
			}
			return printJSON(cmd, balances)
		})
	},
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions [address]",
	Short: "Show the LOCK staking history of an address",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			address, err := addressArg(a, args)
			if err != nil {
				return err
			}
			txs, err := a.LOCK.Transactions(ctx, address)
			if err != nil {
				return err
			}
			return printJSON(cmd, txs)
		})
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(transactionsCmd)
}
