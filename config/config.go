package config

import (
	"fmt"

	"quizcoin/database"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL      string `envconfig:"DATABASE_URL" required:"true"`
	DatabaseName     string `envconfig:"DATABASE_NAME"`
	DatabaseMaxConns int32  `envconfig:"DATABASE_MAX_CONNS" default:"16"`

	// HTTP configuration
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	// NATS configuration; empty disables event publishing
	NATSServers string `envconfig:"NATS_SERVERS"`

	// Economy configuration
	StartingBalance int64 `envconfig:"STARTING_BALANCE" default:"100"`
	ReferralBonus   int64 `envconfig:"REFERRAL_BONUS" default:"50"`

	// Shop configuration
	ShopCacheSize int `envconfig:"SHOP_CACHE_SIZE" default:"256"`

	// Daily digest configuration
	DigestCronSpec string `envconfig:"DIGEST_CRON_SPEC" default:"0 14 * * *"`
	DigestLimit    int    `envconfig:"DIGEST_LIMIT" default:"10"`

	// Environment is "development" or "production"
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// GetDatabaseURL constructs the full database URL by combining base URL and
// database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}
