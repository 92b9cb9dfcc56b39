package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/announcement"
	"github.com/R3E-Network/wallet_layer/internal/app"
)

var (
	announcementHidden     []string
	announcementDown       bool
	announcementCustom     bool
	announcementBlockchain bool
	announcementOcean      bool
	flagsBeta              []string
)

var announcementsCmd = &cobra.Command{
	Use:   "announcements",
	Short: "Show the announcement to display",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			status := announcement.Status{
				BlockchainDown:   announcementDown,
				CustomProvider:   announcementCustom,
				BlockchainOutage: announcementBlockchain,
				OceanOutage:      announcementOcean,
			}
			found, ok, err := a.Announcement(ctx, status, announcementHidden)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no announcement")
				return nil
			}
			return printJSON(cmd, found)
		})
	},
}

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List enabled feature flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			ids, err := a.FeatureFlags(ctx, flagsBeta)
			if err != nil {
				return err
			}
			if ids == nil {
				ids = []string{}
			}
			return printJSON(cmd, ids)
		})
	},
}

func init() {
	announcementsCmd.Flags().StringSliceVar(&announcementHidden, "hidden", nil, "announcement ids already dismissed")
	announcementsCmd.Flags().BoolVar(&announcementDown, "blockchain-down", false, "report that the blockchain has not synced for a while")
	announcementsCmd.Flags().BoolVar(&announcementCustom, "custom-provider", false, "report that a custom endpoint is in use")
	announcementsCmd.Flags().BoolVar(&announcementBlockchain, "blockchain-outage", false, "report a blockchain outage")
	announcementsCmd.Flags().BoolVar(&announcementOcean, "ocean-outage", false, "report an ocean API outage")
	flagsCmd.Flags().StringSliceVar(&flagsBeta, "beta", nil, "IDs of beta features to enable")
	rootCmd.AddCommand(announcementsCmd)
	rootCmd.AddCommand(flagsCmd)
}
