package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Wad       string   `mapstructure:"wad"`
	Metadata  string   `mapstructure:"metadata"`
	Database  string   `mapstructure:"database"`
	Output    string   `mapstructure:"output"`
	Names     []string `mapstructure:"names"`
	LogLevel  string   `mapstructure:"log_level"`
	LogFormat string   `mapstructure:"log_format"`
}

// Load initializes and loads configuration from file
func Load(cfgFile string) (*Config, error) {
	// Set defaults
	viper.SetDefault("wad", "doom1.wad")
	viper.SetDefault("metadata", "doom.toml")
	viper.SetDefault("database", "wadex.db")
	viper.SetDefault("output", "lumps")
	viper.SetDefault("names", []string{})
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")

	// Config file handling
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName("wadex")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("wadex")
	viper.AutomaticEnv()

	// Read config file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that may have come from the config file or from flags
func (c *Config) Validate() error {
	if c.Wad == "" {
		return fmt.Errorf("invalid configuration: wad path cannot be empty")
	}

	if err := validateLumpNames(c.Names); err != nil {
		return fmt.Errorf("invalid lump name configuration: %w", err)
	}

	if err := validateLogging(c.LogLevel, c.LogFormat); err != nil {
		return fmt.Errorf("invalid logging configuration: %w", err)
	}

	return nil
}
