package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	Catalog     CatalogConfig
	Credentials CredentialsConfig
	Pricing     PricingConfig
	Terminal    TerminalConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name string
	Env  string // development, production
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, discard, or file path
}

// CatalogConfig points at the product catalog file
type CatalogConfig struct {
	Path      string
	Delimiter string // single character; "tab" or "\t" for tab
	Currency  string // ISO 4217 code
}

// CredentialsConfig points at the plaintext credential file
type CredentialsConfig struct {
	Path string
}

// TierConfig is one configured discount tier
type TierConfig struct {
	Name string `mapstructure:"name"`
	Rate string `mapstructure:"rate"` // decimal fraction, 0 to 1
}

// PricingConfig overrides the built-in discount tiers when Tiers is non-empty
type PricingConfig struct {
	Tiers []TierConfig
}

// TerminalConfig holds settings for the interactive terminal
type TerminalConfig struct {
	SplashDuration time.Duration
	LogFile        string // log destination while the terminal owns stdout/stderr
}

// Load reads configuration from file and environment.
// Priority (highest to lowest):
// 1. Environment variables with POS_ prefix (e.g., POS_CATALOG_PATH)
// 2. The file at path, or config.toml found in . or ./config when path is empty
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Catalog: CatalogConfig{
			Path:      v.GetString("catalog.path"),
			Delimiter: v.GetString("catalog.delimiter"),
			Currency:  v.GetString("catalog.currency"),
		},
		Credentials: CredentialsConfig{
			Path: v.GetString("credentials.path"),
		},
		Terminal: TerminalConfig{
			SplashDuration: v.GetDuration("terminal.splash_duration"),
			LogFile:        v.GetString("terminal.log_file"),
		},
	}

	if err := v.UnmarshalKey("pricing.tiers", &cfg.Pricing.Tiers); err != nil {
		return nil, fmt.Errorf("pricing.tiers: %w", err)
	}

	// Zero is a valid splash duration, so only default when unset
	if !v.IsSet("terminal.splash_duration") {
		cfg.Terminal.SplashDuration = 2 * time.Second
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pos"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "config.csv"
	}
	if cfg.Catalog.Delimiter == "" {
		cfg.Catalog.Delimiter = ","
	}
	if cfg.Catalog.Currency == "" {
		cfg.Catalog.Currency = "CNY"
	}
	if cfg.Credentials.Path == "" {
		cfg.Credentials.Path = "users.txt"
	}
	if cfg.Terminal.LogFile == "" {
		cfg.Terminal.LogFile = "pos.log"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	if _, err := c.Catalog.DelimiterRune(); err != nil {
		return err
	}

	if c.Terminal.SplashDuration < 0 {
		return fmt.Errorf("terminal.splash_duration cannot be negative")
	}

	seen := make(map[string]struct{}, len(c.Pricing.Tiers))
	for i, tier := range c.Pricing.Tiers {
		name := strings.TrimSpace(tier.Name)
		if name == "" {
			return fmt.Errorf("pricing.tiers[%d].name is required", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("pricing.tiers[%d]: duplicate tier name %q", i, name)
		}
		seen[name] = struct{}{}

		rate, err := decimal.NewFromString(tier.Rate)
		if err != nil {
			return fmt.Errorf("pricing.tiers[%d].rate %q is not a number", i, tier.Rate)
		}
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("pricing.tiers[%d].rate must be between 0 and 1, got %s", i, tier.Rate)
		}
	}

	return nil
}

// DelimiterRune returns the catalog field delimiter as a rune
func (c CatalogConfig) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("catalog.delimiter must be a single character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("catalog.delimiter cannot be %q", c.Delimiter)
	}
	return r, nil
}
