// Package config loads application configuration from files and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Scan   ScanConfig   `mapstructure:"scan"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	DBPath string       `mapstructure:"db_path"`
}

// ServerConfig holds serve-command configuration.
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// ScanConfig holds scan default configuration.
type ScanConfig struct {
	MaxAdditionalPages     int           `mapstructure:"max_additional_pages"`
	DeduplicationThreshold float64       `mapstructure:"deduplication_threshold"`
	CacheTTL               time.Duration `mapstructure:"cache_ttl"`
	RequestsPerSecond      float64       `mapstructure:"requests_per_second"`
}

// GeminiConfig holds Gemini API configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load loads configuration from config files and OFFERSCAN_-prefixed
// environment variables. A missing config file is not an error; defaults
// and environment variables apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.offerscan")

	v.SetEnvPrefix("OFFERSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")

	v.SetDefault("scan.max_additional_pages", 5)
	v.SetDefault("scan.deduplication_threshold", 0.85)
	v.SetDefault("scan.cache_ttl", "15m")
	v.SetDefault("scan.requests_per_second", 1.0)
}

func validate(config *Config) error {
	if config.Scan.DeduplicationThreshold < 0 || config.Scan.DeduplicationThreshold > 1 {
		return fmt.Errorf("scan.deduplication_threshold must be in [0,1], got %v", config.Scan.DeduplicationThreshold)
	}
	if config.Scan.MaxAdditionalPages < 0 {
		return fmt.Errorf("scan.max_additional_pages must be non-negative, got %d", config.Scan.MaxAdditionalPages)
	}
	if config.Scan.RequestsPerSecond <= 0 {
		return fmt.Errorf("scan.requests_per_second must be positive, got %v", config.Scan.RequestsPerSecond)
	}
	return nil
}
