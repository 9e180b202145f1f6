// Package config provides configuration for deckconv.
//
// This package has no I/O dependencies: loading from files, environment
// and flags lives in internal/ioconfig. The default config returned by
// New() is always valid, and all mutations go through Option functions.
//
// Precedence (highest to lowest): CLI flags > env vars (DECKCONV_*) >
// config file > defaults.
package config

import "time"

// Config is the complete deckconv configuration.
type Config struct {
	// Database contains local card-database settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Scryfall contains external card-source settings. API endpoints,
	// timeouts and the polite request delay are explicit configuration
	// rather than ambient state, so the adapter stays testable.
	Scryfall ScryfallConfig `mapstructure:"scryfall" yaml:"scryfall"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// DatabaseConfig contains SQLite card-database settings.
type DatabaseConfig struct {
	// Path is the location of the card database file.
	Path string `mapstructure:"path" yaml:"path"`

	// BusyTimeout is how long a connection waits on a locked database
	// before failing. The store runs single-writer/multi-reader under
	// WAL, so contention windows are short.
	BusyTimeout time.Duration `mapstructure:"busy_timeout" yaml:"busy_timeout"`
}

// ScryfallConfig contains settings for the external card source.
type ScryfallConfig struct {
	// BaseURL is the root of the card API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// BulkDataURL points at the bulk card dump used by `db init`.
	BulkDataURL string `mapstructure:"bulk_data_url" yaml:"bulk_data_url"`

	// UserAgent identifies deckconv to the API.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// Timeout bounds every request; an expired timeout surfaces as a
	// SourceUnavailable failure, never a hang.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// RequestDelay is the pause before each API call. Scryfall asks
	// clients to keep 50-100ms between requests.
	RequestDelay time.Duration `mapstructure:"request_delay" yaml:"request_delay"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging: 'error', 'warn', 'info' or 'debug'.
	Level string `mapstructure:"level" yaml:"level"`
	// Destination can be 'stderr' or 'stdout'.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values. The returned
// config is always valid and ready to use; defaults can be overridden
// with Option functions via Update().
func New() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "deckconv.db",
			BusyTimeout: 5 * time.Second,
		},
		Scryfall: ScryfallConfig{
			BaseURL:      "https://api.scryfall.com",
			BulkDataURL:  "https://data.scryfall.io/default-cards/default-cards.json",
			UserAgent:    "deckconv/1.0",
			Timeout:      30 * time.Second,
			RequestDelay: 100 * time.Millisecond,
		},
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
	}
}

// Update applies a slice of Option functions to the Config. This is the
// only way to modify a Config after creation; invalid option values are
// ignored and the config stays valid.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}
