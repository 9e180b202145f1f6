package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config. Options validate inputs
// and silently keep the previous value for invalid ones.
type Option func(*Config)

// OptDatabasePath sets the card database file location.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBusyTimeout sets how long connections wait on a locked
// database.
func OptDatabaseBusyTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Database.BusyTimeout = d
		}
	}
}

// OptScryfallBaseURL sets the root URL of the card API.
func OptScryfallBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Scryfall.BaseURL = strings.TrimRight(s, "/")
		}
	}
}

// OptScryfallBulkDataURL sets the bulk card dump URL.
func OptScryfallBulkDataURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Scryfall.BulkDataURL = s
		}
	}
}

// OptScryfallUserAgent sets the User-Agent header for API calls.
func OptScryfallUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Scryfall.UserAgent = s
		}
	}
}

// OptScryfallTimeout sets the per-request timeout.
func OptScryfallTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Scryfall.Timeout = d
		}
	}
}

// OptScryfallRequestDelay sets the pause before each API call.
func OptScryfallRequestDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.Scryfall.RequestDelay = d
		}
	}
}

// OptLogFormat sets the log output format: 'json' or 'text'.
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if s == "json" || s == "text" {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		switch s {
		case "debug", "info", "warn", "error":
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where log records go: 'stderr' or 'stdout'.
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if s == "stderr" || s == "stdout" {
			c.Log.Destination = s
		}
	}
}
