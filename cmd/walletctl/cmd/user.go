package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/app"
)

var (
	userDomain string
	userDetail bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := api.ParseDomain(userDomain)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			if domain == api.DomainLOCK {
				user, err := a.LOCK.User(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, user)
			}
			if userDetail {
				detail, err := a.DFX.UserDetail(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, detail)
			}
			user, err := a.DFX.User(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, user)
		})
	},
}

func init() {
	userCmd.Flags().StringVar(&userDomain, "domain", "dfx", "backend to query: dfx or lock")
	userCmd.Flags().BoolVar(&userDetail, "detail", false, "show the DFX user detail")
	rootCmd.AddCommand(userCmd)
}
