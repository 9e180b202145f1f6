// Package ioconfig loads configuration from files, environment
// variables and flags. This is an impure package; the pure config
// types and defaults live in pkg/config.
package ioconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mtgtools/deckconv/pkg/config"
)

// LoadResult is the loaded configuration plus where it came from.
type LoadResult struct {
	Config *config.Config

	// SourcePath is the config file used, empty when running on
	// defaults and environment only.
	SourcePath string
}

// Load builds the effective configuration. Precedence, highest first:
// DECKCONV_* environment variables, the YAML config file, built-in
// defaults. A .env file in the working directory is folded into the
// environment first, so local development setups need no shell
// exports. An empty configPath means "use the default location if a
// file exists there, defaults otherwise"; an explicit path must exist.
func Load(configPath string) (*LoadResult, error) {
	// Ignore a missing .env; it is optional.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("DECKCONV")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Defaults go in before the file is read so AutomaticEnv knows
	// every key it may override.
	defaults := config.New()
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("database.busy_timeout", defaults.Database.BusyTimeout)
	v.SetDefault("scryfall.base_url", defaults.Scryfall.BaseURL)
	v.SetDefault("scryfall.bulk_data_url", defaults.Scryfall.BulkDataURL)
	v.SetDefault("scryfall.user_agent", defaults.Scryfall.UserAgent)
	v.SetDefault("scryfall.timeout", defaults.Scryfall.Timeout)
	v.SetDefault("scryfall.request_delay", defaults.Scryfall.RequestDelay)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.destination", defaults.Log.Destination)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if defaultPath, err := DefaultConfigPath(); err == nil {
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
		}
	}

	usedPath := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	} else {
		usedPath = v.ConfigFileUsed()
	}

	cfg := config.New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &LoadResult{Config: cfg, SourcePath: usedPath}, nil
}
