package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mtgtools/deckconv/internal/ioconfig"
	"github.com/mtgtools/deckconv/pkg/config"
	"github.com/mtgtools/deckconv/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deckconv",
		Short: "deckconv converts MTG deck lists between formats",
		Long: `deckconv converts Magic: The Gathering deck lists between formats.

Card names in a deck list are resolved against a local SQLite card
database; cards missing locally are fetched from the Scryfall API and
cached for the next run.

Subcommands:
  convert    Convert a deck list between formats
  db init    Create the card database and populate it from bulk data
  db update  Migrate an existing card database to the current schema

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (DECKCONV_*)
  3. Config file (~/.config/deckconv/config.yaml)
  4. Built-in defaults

  Nested fields use underscores (database.path → DECKCONV_DATABASE_PATH).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg = result.Config

			slog.SetDefault(logger.New(&cfg.Log))
			if result.SourcePath != "" {
				slog.Debug("Loaded config file", "path", result.SourcePath)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/deckconv/config.yaml)")
	rootCmd.PersistentFlags().String("db", "",
		"card database file (overrides database.path)")

	rootCmd.AddCommand(getConvertCmd())
	rootCmd.AddCommand(getDBCmd())

	return rootCmd
}

// getConfig returns the loaded configuration with persistent flag
// overrides applied.
func getConfig(cmd *cobra.Command) *config.Config {
	if path, err := cmd.Flags().GetString("db"); err == nil && path != "" {
		cfg.Update([]config.Option{config.OptDatabasePath(path)})
	}
	return cfg
}
