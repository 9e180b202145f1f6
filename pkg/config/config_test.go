package config_test

import (
	"testing"
	"time"

	"github.com/mtgtools/deckconv/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "deckconv.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, "https://api.scryfall.com", cfg.Scryfall.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Scryfall.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Scryfall.RequestDelay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestUpdateOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath("/tmp/cards.db"),
		config.OptScryfallBaseURL("https://example.test/api/"),
		config.OptScryfallTimeout(3 * time.Second),
		config.OptScryfallRequestDelay(0),
		config.OptLogLevel("debug"),
		config.OptLogFormat("json"),
		config.OptLogDestination("stdout"),
	})

	assert.Equal(t, "/tmp/cards.db", cfg.Database.Path)
	// Trailing slash is trimmed so URL joining stays predictable.
	assert.Equal(t, "https://example.test/api", cfg.Scryfall.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Scryfall.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Scryfall.RequestDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.Destination)
}

func TestInvalidOptionsKeepDefaults(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath("   "),
		config.OptScryfallTimeout(-time.Second),
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("file"),
	})

	def := config.New()
	assert.Equal(t, def.Database.Path, cfg.Database.Path)
	assert.Equal(t, def.Scryfall.Timeout, cfg.Scryfall.Timeout)
	assert.Equal(t, def.Log.Level, cfg.Log.Level)
	assert.Equal(t, def.Log.Format, cfg.Log.Format)
	assert.Equal(t, def.Log.Destination, cfg.Log.Destination)
}
