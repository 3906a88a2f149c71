package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the resilscore configuration
type Config struct {
	Root        string `mapstructure:"root"`
	CatalogPath string `mapstructure:"catalog"`
	RulesPath   string `mapstructure:"rules"`
	DataDir     string `mapstructure:"data"`
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	TopN        int    `mapstructure:"topN"`
	Quiet       bool   `mapstructure:"quiet"`
	Verbose     bool   `mapstructure:"verbose"`
	Concurrency int    `mapstructure:"concurrency"`
	Parallel    bool   `mapstructure:"parallel"`
}

// LoadConfig loads configuration from various sources
func LoadConfig(rootPath string) (*Config, error) {
	// Set default values
	viper.SetDefault("root", ".")
	viper.SetDefault("catalog", "catalog.yaml")
	viper.SetDefault("rules", "rules.yaml")
	viper.SetDefault("data", ".")
	viper.SetDefault("format", "console")
	viper.SetDefault("topN", 5)
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("concurrency", 10)
	viper.SetDefault("parallel", true)

	// Config file locations
	configPaths := []string{".resilscorerc.json", ".resilscorerc.yaml", ".resilscorerc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables
	viper.SetEnvPrefix("RESILSCORE")
	viper.AutomaticEnv()

	// Create config instance
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override root if provided
	if rootPath != "" {
		config.Root = rootPath
	}

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	// Validate format
	if config.Format != "console" && config.Format != "json" {
		return fmt.Errorf("invalid format: %s. Must be 'console' or 'json'", config.Format)
	}

	// Validate topN
	if config.TopN < 1 {
		return fmt.Errorf("topN must be at least 1")
	}

	// Validate concurrency
	if config.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	return nil
}

// ResolveCatalogPath returns the catalog path, resolved against Root when
// relative.
func (c *Config) ResolveCatalogPath() string {
	return c.resolve(c.CatalogPath)
}

// ResolveRulesPath returns the rules path, resolved against Root when
// relative.
func (c *Config) ResolveRulesPath() string {
	return c.resolve(c.RulesPath)
}

// ResolveDataDir returns the data directory, resolved against Root when
// relative.
func (c *Config) ResolveDataDir() string {
	return c.resolve(c.DataDir)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// EffectiveConcurrency returns the worker count for batch evaluation:
// 1 when parallelism is disabled, Concurrency otherwise.
func (c *Config) EffectiveConcurrency() int {
	if !c.Parallel {
		return 1
	}
	return c.Concurrency
}
