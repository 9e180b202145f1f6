package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtgtools/deckconv/internal/ioschema"
	"github.com/mtgtools/deckconv/internal/ioscryfall"
	"github.com/mtgtools/deckconv/internal/iostore"
	"github.com/mtgtools/deckconv/pkg/schema"
)

var initBulkFile string

func getDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the local card database",
	}
	cmd.AddCommand(getDBInitCmd())
	cmd.AddCommand(getDBUpdateCmd())
	cmd.AddCommand(getDBStatusCmd())
	return cmd
}

func getDBInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the card database and populate it from bulk data",
		Long: `Create the card database file, or open an existing one, and
populate it from the Scryfall bulk card dump.

The dump is streamed, so a full import needs little memory. Re-running
init refreshes existing rows in place. With --file a previously
downloaded dump is imported instead of downloading one.

Examples:
  deckconv db init
  deckconv db init --file default-cards.json
  deckconv db init --db ~/.cache/deckconv/cards.db`,
		RunE: runDBInit,
	}

	cmd.Flags().StringVar(&initBulkFile, "file", "",
		"import this bulk data file instead of downloading one")

	return cmd
}

func runDBInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig(cmd)

	st, err := iostore.Open(ctx, &cfg.Database)
	if err != nil {
		return decorateStoreErr(err)
	}
	defer st.Close()

	client := ioscryfall.New(&cfg.Scryfall, st)

	var stats *ioscryfall.ImportStats
	if initBulkFile != "" {
		stats, err = client.ImportBulkFile(ctx, initBulkFile)
	} else {
		stats, err = client.ImportBulk(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Imported %s printings into %s (%s skipped)\n",
		humanize.Comma(int64(stats.Imported)), cfg.Database.Path,
		humanize.Comma(int64(stats.Skipped)))
	return nil
}

func getDBUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Migrate the card database to the current schema version",
		Long: `Apply pending schema migrations to an existing card database.

Migrations run in order, each inside its own transaction together with
the version marker, so an interrupted update leaves the database at the
last completed version. A database newer than this build is refused.

Examples:
  deckconv db update
  deckconv db update --db ~/.cache/deckconv/cards.db`,
		RunE: runDBUpdate,
	}
}

func runDBUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig(cmd)

	st, err := iostore.OpenUnchecked(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	before, err := st.Version(ctx)
	if err != nil {
		return err
	}
	if err = ioschema.New(st.DB()).Ensure(ctx); err != nil {
		return err
	}

	if before == schema.Version {
		fmt.Printf("%s is already at schema version %d\n",
			cfg.Database.Path, schema.Version)
		return nil
	}
	fmt.Printf("Migrated %s from schema version %d to %d\n",
		cfg.Database.Path, before, schema.Version)
	return nil
}

func getDBStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show card database version and contents",
		RunE:  runDBStatus,
	}
}

func runDBStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig(cmd)

	st, err := iostore.OpenUnchecked(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	version, err := st.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Printf("Schema version: %d (current: %d)\n", version, schema.Version)

	for _, table := range []string{"cards", "card_sets", "printings"} {
		var count int64
		err = st.DB().QueryRowContext(ctx,
			"SELECT COUNT(*) FROM "+table).Scan(&count)
		if err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		fmt.Printf("%-10s %s\n", table+":", humanize.Comma(count))
	}
	return nil
}
