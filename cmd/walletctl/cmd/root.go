// Package cmd provides the CLI commands for walletctl.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/api"
	"github.com/R3E-Network/wallet_layer/internal/app"
	"github.com/R3E-Network/wallet_layer/internal/config"
	"github.com/R3E-Network/wallet_layer/pkg/logger"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "walletctl",
	Short: "walletctl - DFX and LOCK backend client",
	Long: `walletctl calls the DFX (buy/sell, KYC, master data) and LOCK (staking)
backends with the wallet's session.

Configuration:
  Settings are read from the file given with --config, then from a .env file,
  then from WALLET_* environment variables, e.g.

    WALLET_CHANNEL=staging
    WALLET_WIF=<private key>
    WALLET_ADDRESS=df1... WALLET_SIGNATURE=<signature from an external wallet>
    WALLET_SESSION_STORE=file WALLET_SESSION_FILE=~/.walletctl/sessions.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default: ./.env if present)")
}

func loadConfig() (*config.Config, error) {
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	return config.Load(cfgFile, envFiles...)
}

// withApp builds the application, runs fn and stops the application again.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.Application) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging).Named("walletctl")

	a, err := app.New(cfg, log, app.Options{})
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := a.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.Stop(context.Background()); err != nil {
			log.WithError(err).Warn("stop application")
		}
	}()
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDomains turns a --domain value into domains. "all" selects both.
func parseDomains(value string) ([]api.Domain, error) {
	if strings.EqualFold(value, "all") {
		return api.Domains(), nil
	}
	d, err := api.ParseDomain(value)
	if err != nil {
		return nil, err
	}
	return []api.Domain{d}, nil
}
