package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Shop    ShopConfig    `yaml:"shop"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	Mode            string `yaml:"mode"` // gin mode: debug, release, test
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite
	Path   string `yaml:"path"`
	Seed   bool   `yaml:"seed"` // load the demo catalog when the product list is empty
}

// ShopConfig holds pricing rules. Amounts are minor units.
type ShopConfig struct {
	Currency              string `yaml:"currency"`
	FreeShippingThreshold int64  `yaml:"free_shipping_threshold"`
	FlatShippingFee       int64  `yaml:"flat_shipping_fee"`
	PaymentDelay          string `yaml:"payment_delay"`
}

// AuthConfig configures sessions and the accounts allowed to log in.
type AuthConfig struct {
	SessionTTL string    `yaml:"session_ttl"`
	Accounts   []Account `yaml:"accounts"`
}

// Account is a login with a bcrypt password hash.
type Account struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
	Role         string `yaml:"role"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":9091",
			ShutdownTimeout: "5s",
			Mode:            "release",
		},
		Storage: StorageConfig{
			Driver: "memory",
			Path:   "data/storefront.db",
			Seed:   true,
		},
		Shop: ShopConfig{
			Currency:              "INR",
			FreeShippingThreshold: 99900,
			FlatShippingFee:       4900,
			PaymentDelay:          "0s",
		},
		Auth: AuthConfig{
			SessionTTL: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STOREFRONT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STOREFRONT_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("STOREFRONT_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("STOREFRONT_FREE_SHIPPING_THRESHOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Shop.FreeShippingThreshold = n
		}
	}
	if v := os.Getenv("STOREFRONT_FLAT_SHIPPING_FEE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Shop.FlatShippingFee = n
		}
	}
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	if c.Shop.FreeShippingThreshold < 0 || c.Shop.FlatShippingFee < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	if _, err := c.SessionTTL(); err != nil {
		return fmt.Errorf("auth.session_ttl: %w", err)
	}
	if _, err := c.PaymentDelay(); err != nil {
		return fmt.Errorf("shop.payment_delay: %w", err)
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	for _, a := range c.Auth.Accounts {
		if a.Role != "admin" && a.Role != "customer" {
			return fmt.Errorf("account %s: unknown role %q", a.Email, a.Role)
		}
	}
	return nil
}

func (c *Config) SessionTTL() (time.Duration, error) {
	return time.ParseDuration(c.Auth.SessionTTL)
}

func (c *Config) PaymentDelay() (time.Duration, error) {
	return time.ParseDuration(c.Shop.PaymentDelay)
}

func (c *Config) ShutdownTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ShutdownTimeout)
}
