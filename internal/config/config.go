// Package config loads the wallet layer configuration from an optional YAML
// file, an optional .env file and WALLET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/R3E-Network/wallet_layer/pkg/logger"
)

// DefaultEnvFile is loaded when present and no env file is named.
const DefaultEnvFile = ".env"

// Session store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the complete wallet layer configuration.
type Config struct {
	// Channel is the release channel used to pick the environment.
	Channel string `yaml:"channel" env:"WALLET_CHANNEL"`
	// Environment overrides the channel mapping.
	Environment EnvironmentName `yaml:"environment" env:"WALLET_ENVIRONMENT" validate:"omitempty,oneof=Production Preview Staging Development"`
	Network     Network         `yaml:"network" env:"WALLET_NETWORK" validate:"omitempty,oneof=Local Playground MainNet TestNet"`

	API     APIConfig            `yaml:"api"`
	Session SessionConfig        `yaml:"session"`
	Wallet  WalletConfig         `yaml:"wallet"`
	App     AppConfig            `yaml:"app"`
	Metrics MetricsConfig        `yaml:"metrics"`
	Logging logger.LoggingConfig `yaml:"logging"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	// DFXURL and LOCKURL override the environment's API URLs.
	DFXURL            string        `yaml:"dfx_url" env:"WALLET_DFX_API_URL" validate:"omitempty,url"`
	LOCKURL           string        `yaml:"lock_url" env:"WALLET_LOCK_API_URL" validate:"omitempty,url"`
	Timeout           time.Duration `yaml:"timeout" env:"WALLET_API_TIMEOUT" validate:"gte=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"WALLET_API_RPS" validate:"gte=0"`
	Burst             int           `yaml:"burst" env:"WALLET_API_BURST" validate:"gte=0"`
}

// SessionConfig selects where sessions are kept.
type SessionConfig struct {
	Store         string `yaml:"store" env:"WALLET_SESSION_STORE" validate:"oneof=memory file redis"`
	File          string `yaml:"file" env:"WALLET_SESSION_FILE" validate:"required_if=Store file"`
	RedisAddr     string `yaml:"redis_addr" env:"WALLET_REDIS_ADDR" validate:"required_if=Store redis"`
	RedisPassword string `yaml:"redis_password" env:"WALLET_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"WALLET_REDIS_DB" validate:"gte=0"`
	RedisPrefix   string `yaml:"redis_prefix" env:"WALLET_REDIS_PREFIX"`
	// Secret encrypts the session file when set.
	Secret string `yaml:"secret" env:"WALLET_SESSION_SECRET"`
}

// WalletConfig identifies the signing wallet.
type WalletConfig struct {
	WIF string `yaml:"wif" env:"WALLET_WIF" validate:"excluded_with=Signature"`
	// Signature is a sign-in signature produced by an external wallet for
	// Address. It replaces the local key.
	Signature string `yaml:"signature" env:"WALLET_SIGNATURE"`
	// Address overrides the address derived from the key.
	Address string `yaml:"address" env:"WALLET_ADDRESS" validate:"required_with=Signature"`
	ID      int    `yaml:"id" env:"WALLET_ID" validate:"gte=0"`
	UsedRef string `yaml:"used_ref" env:"WALLET_USED_REF"`
}

// AppConfig describes the app for announcement and feature flag matching.
type AppConfig struct {
	Version  string `yaml:"version" env:"WALLET_APP_VERSION" validate:"required"`
	Platform string `yaml:"platform" env:"WALLET_APP_PLATFORM" validate:"required"`
	Language string `yaml:"language" env:"WALLET_APP_LANGUAGE" validate:"required"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr enables the /metrics listener when set.
	Addr string `yaml:"addr" env:"WALLET_METRICS_ADDR" validate:"omitempty,hostname_port"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Channel: "production",
		Network: NetworkMainNet,
		API: APIConfig{
			Timeout: 30 * time.Second,
		},
		Session: SessionConfig{
			Store:       StoreMemory,
			RedisPrefix: "wallet",
		},
		Wallet: WalletConfig{ID: 1},
		App: AppConfig{
			Version:  "1.0.0",
			Platform: "web",
			Language: "en",
		},
		Logging: logger.LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load builds the configuration. Defaults are overlaid with the YAML file at
// path (skipped when empty), then with environment variables. Env files are
// loaded into the process environment first without overriding variables
// that are already set; with none named, DefaultEnvFile is loaded if present.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		files = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// ResolveEnvironment returns the selected environment with the API URL
// overrides applied.
func (c *Config) ResolveEnvironment() (Environment, error) {
	env := ForChannel(c.Channel)
	if c.Environment != "" {
		var err error
		if env, err = Lookup(c.Environment); err != nil {
			return Environment{}, err
		}
	}
	if c.API.DFXURL != "" {
		env.DFXAPIURL = c.API.DFXURL
	}
	if c.API.LOCKURL != "" {
		env.LOCKAPIURL = c.API.LOCKURL
	}
	return env, nil
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("config: %w", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return fmt.Errorf("config: %s", strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required", "required_if", "required_with":
		return fmt.Sprintf("%s is required", field)
	case "excluded_with":
		return fmt.Sprintf("%s must be empty when %s is set", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a valid host:port", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
}
