package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Shopify     ShopifyConfig
	JWT         JWTConfig
}

// ShopifyConfig holds the upstream credentials. The storefront token covers
// customer-facing reads (products, collections, customer login); the admin
// token covers customer creation on the Admin REST API.
type ShopifyConfig struct {
	ShopDomain           string
	StorefrontToken      string
	StorefrontAPIVersion string
	AdminToken           string
	AdminAPIVersion      string
}

type JWTConfig struct {
	Secret string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "3000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shopify: ShopifyConfig{
			ShopDomain:           strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			StorefrontToken:      strings.TrimSpace(getEnvOrViper("SHOPIFY_STOREFRONT_TOKEN", "")),
			StorefrontAPIVersion: getEnvOrViper("SHOPIFY_STOREFRONT_API_VERSION", "2024-10"),
			AdminToken:           strings.TrimSpace(getEnvOrViper("SHOPIFY_ADMIN_TOKEN", "")),
			AdminAPIVersion:      getEnvOrViper("SHOPIFY_ADMIN_API_VERSION", "2024-10"),
		},
		JWT: JWTConfig{
			Secret: strings.TrimSpace(getEnvOrViper("JWT_SECRET", "")),
		},
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.StorefrontToken == "" {
		return nil, fmt.Errorf("SHOPIFY_STOREFRONT_TOKEN is required")
	}
	if cfg.Shopify.AdminToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ADMIN_TOKEN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
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
