package config

import (
	"fmt"
	"slices"
	"strings"
)

// Network is a blockchain network the wallet can connect to.
type Network string

const (
	NetworkLocalPlayground  Network = "Local"
	NetworkRemotePlayground Network = "Playground"
	NetworkMainNet          Network = "MainNet"
	NetworkTestNet          Network = "TestNet"
)

// IsPlayground reports whether network is a local or remote playground.
func IsPlayground(network Network) bool {
	return network == NetworkLocalPlayground || network == NetworkRemotePlayground
}

// EnvironmentName names a deployment of the backends.
type EnvironmentName string

const (
	Production  EnvironmentName = "Production"
	Preview     EnvironmentName = "Preview"
	Staging     EnvironmentName = "Staging"
	Development EnvironmentName = "Development"
)

// Environment holds the backend endpoints of one deployment.
type Environment struct {
	Name           EnvironmentName
	Debug          bool
	Networks       []Network
	DFXAPIURL      string
	DFXPaymentURL  string
	LOCKAPIURL     string
	LOCKPaymentURL string
}

// Supports reports whether network is available in the environment.
func (e Environment) Supports(network Network) bool {
	return slices.Contains(e.Networks, network)
}

var environments = map[EnvironmentName]Environment{
	Production: {
		Name:           Production,
		Networks:       []Network{NetworkMainNet, NetworkTestNet, NetworkRemotePlayground},
		DFXAPIURL:      "https://api.dfx.swiss/v1",
		DFXPaymentURL:  "https://payment.dfx.swiss",
		LOCKAPIURL:     "https://api.lock.space/v1",
		LOCKPaymentURL: "https://kyc.lock.space",
	},
	Preview: {
		Name:           Preview,
		Debug:          true,
		Networks:       []Network{NetworkMainNet, NetworkTestNet, NetworkRemotePlayground},
		DFXAPIURL:      "https://api.dfx.swiss/v1",
		DFXPaymentURL:  "https://payment.dfx.swiss",
		LOCKAPIURL:     "https://api.lock.space/v1",
		LOCKPaymentURL: "https://kyc.lock.space",
	},
	Staging: {
		Name:           Staging,
		Debug:          true,
		Networks:       []Network{NetworkMainNet, NetworkTestNet, NetworkRemotePlayground},
		DFXAPIURL:      "https://api.dfx.swiss/v1",
		DFXPaymentURL:  "https://payment.dfx.swiss",
		LOCKAPIURL:     "https://stg.api.lock.space/v1",
		LOCKPaymentURL: "UNDEFINED",
	},
	Development: {
		Name:           Development,
		Debug:          true,
		Networks:       []Network{NetworkTestNet, NetworkMainNet, NetworkLocalPlayground, NetworkRemotePlayground},
		DFXAPIURL:      "https://dev.api.dfx.swiss/v1",
		DFXPaymentURL:  "https://dev.payment.dfx.swiss",
		LOCKAPIURL:     "https://dev.api.lock.space/v1",
		LOCKPaymentURL: "https://dev.kyc.lock.space",
	},
}

// EnvironmentNames returns all environments in release order.
func EnvironmentNames() []EnvironmentName {
	return []EnvironmentName{Production, Preview, Staging, Development}
}

// Lookup returns the environment called name.
func Lookup(name EnvironmentName) (Environment, error) {
	env, ok := environments[name]
	if !ok {
		return Environment{}, fmt.Errorf("config: unknown environment %q", name)
	}
	env.Networks = slices.Clone(env.Networks)
	return env, nil
}

// ForChannel maps a release channel to its environment. Unknown channels
// resolve to Development.
func ForChannel(channel string) Environment {
	name := Development
	switch {
	case channel == "production":
		name = Production
	case channel == "preview" || strings.HasPrefix(channel, "pr-preview-"):
		name = Preview
	case channel == "staging":
		name = Staging
	}
	env, _ := Lookup(name)
	return env
}
