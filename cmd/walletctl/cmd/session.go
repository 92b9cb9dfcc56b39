package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/app"
)

var (
	loginDomain string
	loginToken  string
)

type sessionInfo struct {
	Domain    string     `json:"domain"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the wallet key or store a token",
	Long: `Sign in to DFX, LOCK or both. Without --token the configured wallet key signs
the backend's sign message; an unknown address is signed up on the fly.
With --token the given access token is stored as is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domains, err := parseDomains(loginDomain)
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			out := make([]sessionInfo, 0, len(domains))
			for _, d := range domains {
				var session api.Session
				if loginToken != "" {
					session, err = a.Sessions.Login(ctx, d, loginToken)
				} else {
					session, err = a.SignIn(ctx, d)
				}
				if err != nil {
					return fmt.Errorf("login %s: %w", d, err)
				}
				info := sessionInfo{Domain: d.String()}
				if !session.ExpiresAt.IsZero() {
					exp := session.ExpiresAt
					info.ExpiresAt = &exp
				}
				out = append(out, info)
			}
			return printJSON(cmd, out)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.Application) error {
			if err := a.Sessions.DeleteSession(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginDomain, "domain", "all", "backend to sign in to: dfx, lock or all")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "store this access token instead of signing in")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
