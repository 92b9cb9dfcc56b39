package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/app"
)

var assetsDomain string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List tradeable assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := api.ParseDomain(assetsDomain)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			if domain == api.DomainLOCK {
				assets, err := a.LOCK.Assets(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, assets)
			}
			assets, err := a.DFX.Assets(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, assets)
		})
	},
}

func init() {
	assetsCmd.Flags().StringVar(&assetsDomain, "domain", "dfx", "backend to query: dfx or lock")
	rootCmd.AddCommand(assetsCmd)
}
