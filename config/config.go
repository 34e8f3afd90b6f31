package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`

	// Simulated backend
	LatencyScale    float64       `mapstructure:"LATENCY_SCALE"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`

	// Social feed
	FeedPageSize int `mapstructure:"FEED_PAGE_SIZE"`

	// Local persistence (empty path keeps tokens in memory only)
	TokenStorePath string `mapstructure:"TOKEN_STORE_PATH"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables take precedence
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LATENCY_SCALE", 1.0)
	viper.SetDefault("JWT_SECRET", "ecoconnect-dev-secret")
	viper.SetDefault("ACCESS_TOKEN_TTL", time.Hour)
	viper.SetDefault("REFRESH_TOKEN_TTL", time.Hour*24*30)
	viper.SetDefault("FEED_PAGE_SIZE", 10)
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK if we're using env vars
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if config.FeedPageSize <= 0 {
		return nil, fmt.Errorf("FEED_PAGE_SIZE must be positive")
	}
	if config.LatencyScale < 0 {
		return nil, fmt.Errorf("LATENCY_SCALE cannot be negative")
	}

	return config, nil
}
