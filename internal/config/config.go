package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Gateway     GatewayConfig
	Store       StoreConfig
	Marketplace MarketplaceConfig
	API         APIConfig
}

// GatewayConfig configures the payment processor client
type GatewayConfig struct {
	BaseURL string
	APIKey  string
}

// StoreConfig selects and configures the order snapshot store backend
type StoreConfig struct {
	Backend  string // "postgres", "redis" or "memory"
	Postgres PostgresConfig
	Redis    RedisConfig
}

type PostgresConfig struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MigrationsDir string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MarketplaceConfig configures the clients for the cart/auth/verification
// collaborators of the marketplace core.
type MarketplaceConfig struct {
	BaseURL      string
	ServiceToken string
}

type APIConfig struct {
	// Bcrypt hash of the service token accepted on checkout routes.
	TokenHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_BACKEND", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MIGRATIONS_DIR", "migrations")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Gateway: GatewayConfig{
			BaseURL: getEnvOrViper("GATEWAY_BASE_URL", ""),
			APIKey:  getEnvOrViper("GATEWAY_API_KEY", ""),
		},
		Store: StoreConfig{
			Backend: getEnvOrViper("STORE_BACKEND", "postgres"),
			Postgres: PostgresConfig{
				Host:          getEnvOrViper("DB_HOST", "localhost"),
				Port:          getEnvOrViper("DB_PORT", "5432"),
				User:          getEnvOrViper("DB_USER", "postgres"),
				Password:      getEnvOrViper("DB_PASSWORD", "postgres"),
				DBName:        getEnvOrViper("DB_NAME", "checkout"),
				SSLMode:       getEnvOrViper("DB_SSLMODE", "disable"),
				MigrationsDir: getEnvOrViper("DB_MIGRATIONS_DIR", "migrations"),
			},
			Redis: RedisConfig{
				Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
				Password: getEnvOrViper("REDIS_PASSWORD", ""),
				DB:       viper.GetInt("REDIS_DB"),
			},
		},
		Marketplace: MarketplaceConfig{
			BaseURL:      getEnvOrViper("MARKETPLACE_BASE_URL", ""),
			ServiceToken: getEnvOrViper("MARKETPLACE_SERVICE_TOKEN", ""),
		},
		API: APIConfig{
			TokenHash: getEnvOrViper("API_TOKEN_HASH", ""),
		},
	}

	// Validate required fields
	if cfg.Gateway.BaseURL == "" {
		return nil, fmt.Errorf("GATEWAY_BASE_URL is required")
	}
	if cfg.Gateway.APIKey == "" {
		return nil, fmt.Errorf("GATEWAY_API_KEY is required")
	}
	if cfg.Marketplace.BaseURL == "" {
		return nil, fmt.Errorf("MARKETPLACE_BASE_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
