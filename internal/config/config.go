// Package config provides Viper-based hierarchical configuration management:
// defaults, then an optional config.yaml, then BANK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Analysis struct {
		BaseIndustry              string  `mapstructure:"base_industry" yaml:"base_industry"`
		TopN                      int     `mapstructure:"top_n" yaml:"top_n"`
		ConcentrationThresholdPct float64 `mapstructure:"concentration_threshold_pct" yaml:"concentration_threshold_pct"`
		RoundAmountDivisors       []int64 `mapstructure:"round_amount_divisors" yaml:"round_amount_divisors"`
		TaxonomyFile              string  `mapstructure:"taxonomy_file" yaml:"taxonomy_file"`
		PolicyFile                string  `mapstructure:"policy_file" yaml:"policy_file"`
		Currency                  string  `mapstructure:"currency" yaml:"currency"`
	} `mapstructure:"analysis" yaml:"analysis"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.bank-analyzer")
	v.AddConfigPath(".bank-analyzer")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BANK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("analysis.base_industry", "food")
	v.SetDefault("analysis.top_n", 5)
	v.SetDefault("analysis.concentration_threshold_pct", 30.0)
	v.SetDefault("analysis.round_amount_divisors", []int64{5000, 10000})
	v.SetDefault("analysis.taxonomy_file", "")
	v.SetDefault("analysis.policy_file", "")
	v.SetDefault("analysis.currency", "RM")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Analysis.BaseIndustry == "" {
		return fmt.Errorf("analysis.base_industry must not be empty")
	}

	if config.Analysis.TopN < 1 || config.Analysis.TopN > 100 {
		return fmt.Errorf("analysis.top_n must be between 1 and 100, got: %d", config.Analysis.TopN)
	}

	if config.Analysis.ConcentrationThresholdPct < 0 || config.Analysis.ConcentrationThresholdPct > 100 {
		return fmt.Errorf("analysis.concentration_threshold_pct must be between 0 and 100, got: %f",
			config.Analysis.ConcentrationThresholdPct)
	}

	for _, div := range config.Analysis.RoundAmountDivisors {
		if div <= 0 {
			return fmt.Errorf("analysis.round_amount_divisors must be positive, got: %d", div)
		}
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// ConfigureLoggingFromConfig configures a logrus logger from the Config.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file if one exists in the
// current or parent directory.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}
