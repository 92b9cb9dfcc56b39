package cmd

import (
	"github.com/spf13/cobra"

	"github.com/R3E-Network/wallet_layer/internal/config"
)

type envOutput struct {
	Channel        string           `json:"channel"`
	Name           string           `json:"name"`
	Debug          bool             `json:"debug"`
	Network        config.Network   `json:"network"`
	Playground     bool             `json:"playground"`
	Networks       []config.Network `json:"networks"`
	DFXAPIURL      string           `json:"dfxApiUrl"`
	DFXPaymentURL  string           `json:"dfxPaymentUrl"`
	LOCKAPIURL     string           `json:"lockApiUrl"`
	LOCKPaymentURL string           `json:"lockPaymentUrl"`
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the resolved environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		env, err := cfg.ResolveEnvironment()
		if err != nil {
			return err
		}
		return printJSON(cmd, envOutput{
			Channel:        cfg.Channel,
			Name:           string(env.Name),
			Debug:          env.Debug,
			Network:        cfg.Network,
			Playground:     config.IsPlayground(cfg.Network),
			Networks:       env.Networks,
			DFXAPIURL:      env.DFXAPIURL,
			DFXPaymentURL:  env.DFXPaymentURL,
			LOCKAPIURL:     env.LOCKAPIURL,
			LOCKPaymentURL: env.LOCKPaymentURL,
		})
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
