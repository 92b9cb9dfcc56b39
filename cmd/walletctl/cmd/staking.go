package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/app"
	"github.com/R3E-Network/wallet_layer/internal/lock"
)

var (
	stakingStrategy string
	stakingID       int
	stakingAsset    string
	stakingAmount   float64
	stakingTxID     string
)

var stakingCmd = &cobra.Command{
	Use:   "staking",
	Short: "List, deposit into and withdraw from LOCK staking",
}

var stakingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stakings, all strategies unless --strategy is set",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			if stakingStrategy == "" {
				all, err := a.LOCK.AllStaking(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, all)
			}
			strategy, err := parseStrategy(stakingStrategy)
			if err != nil {
				return err
			}
			staking, err := a.LOCK.Staking(ctx, strategy)
			if err != nil {
				return err
			}
			return printJSON(cmd, staking)
		})
	},
}

var stakingDepositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Register a deposit transaction with a staking",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			staking, err := a.LOCK.Deposit(ctx, stakingID, lock.Deposit{
				Asset:  stakingAsset,
				Amount: stakingAmount,
				TxID:   stakingTxID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, staking)
		})
	},
}

var stakingWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Request, sign and submit a withdrawal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			if a.Signer == nil {
				return app.ErrNoWallet
			}
			staking, err := a.LOCK.Withdraw(ctx, stakingID, stakingAmount, stakingAsset, a.Signer)
			if err != nil {
				return err
			}
			return printJSON(cmd, staking)
		})
	},
}

var stakingDraftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List open withdrawal drafts of a staking",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			drafts, err := a.LOCK.WithdrawalDrafts(ctx, stakingID)
			if err != nil {
				return err
			}
			return printJSON(cmd, drafts)
		})
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show LOCK staking yields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			analytics, err := a.LOCK.Analytics(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, analytics)
		})
	},
}

func parseStrategy(s string) (lock.StakingStrategy, error) {
	for _, strategy := range lock.Strategies() {
		if string(strategy) == s {
			return strategy, nil
		}
	}
	return "", fmt.Errorf("unknown staking strategy %q", s)
}

func init() {
	stakingListCmd.Flags().StringVar(&stakingStrategy, "strategy", "", "Masternode or LiquidityMining")

	for _, c := range []*cobra.Command{stakingDepositCmd, stakingWithdrawCmd, stakingDraftsCmd} {
		c.Flags().IntVar(&stakingID, "id", 0, "staking id")
		_ = c.MarkFlagRequired("id")
	}
	for _, c := range []*cobra.Command{stakingDepositCmd, stakingWithdrawCmd} {
		c.Flags().StringVar(&stakingAsset, "asset", "DFI", "asset name")
		c.Flags().Float64Var(&stakingAmount, "amount", 0, "amount")
	}
	stakingDepositCmd.Flags().StringVar(&stakingTxID, "tx", "", "deposit transaction id")

	stakingCmd.AddCommand(stakingListCmd, stakingDepositCmd, stakingWithdrawCmd, stakingDraftsCmd)
	rootCmd.AddCommand(stakingCmd)
	rootCmd.AddCommand(analyticsCmd)
}
