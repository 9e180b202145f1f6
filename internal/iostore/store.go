// Package iostore implements the carddb.Store contract on a local
// SQLite file using the modernc.org/sqlite driver. This is an impure
// I/O package; the pure contracts live in pkg/carddb.
package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mtgtools/deckconv/internal/ioschema"
	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/mtgtools/deckconv/pkg/config"
	"github.com/mtgtools/deckconv/pkg/schema"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store is the SQLite-backed card database. It exclusively owns all
// persisted rows: the resolver reads through LookupPrinting, writes
// arrive only as whole payloads routed through the source adapter.
type Store struct {
	db   *sql.DB
	path string
}

var _ carddb.Store = (*Store)(nil)

// dsn builds the connection string. Pragmas ride in the DSN so every
// pooled connection gets them: foreign-key enforcement is per
// connection in SQLite, and WAL gives the single-writer/multi-reader
// pattern concurrent readers while a write is in flight.
func dsn(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
}

// Open opens or creates the card database at cfg.Path. A fresh file is
// initialized at the current schema version with the rarity seed. A file
// at any other version is refused with a SchemaMismatch failure: older
// files must run the migration path first (see OpenUnchecked), newer
// files cannot be downgraded.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	st, err := OpenUnchecked(ctx, cfg)
	if err != nil {
		return nil, err
	}

	version, err := st.Version(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	if version != schema.Version {
		st.Close()
		return nil, carddb.SchemaMismatchError(version, schema.Version, nil)
	}
	return st, nil
}

// OpenUnchecked opens the database without the schema version gate.
// A fresh file is still initialized at the current version; an existing
// file is returned as-is so the migration path can inspect and upgrade
// it. Every other caller should use Open.
func OpenUnchecked(
	ctx context.Context, cfg *config.DatabaseConfig,
) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open card database %s: %w", cfg.Path, err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open card database %s: %w", cfg.Path, err)
	}

	st := &Store{db: db, path: cfg.Path}

	version, err := st.Version(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == 0 {
		slog.Info("Creating card database schema",
			"path", cfg.Path, "version", schema.Version)
		if err = ioschema.New(db).Create(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return st, nil
}

// DB exposes the underlying handle for the schema manager.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Version returns the persisted schema version from user_version.
func (s *Store) Version(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LookupPrinting returns every printing whose card name matches name
// exactly, case-sensitive, narrowed conjunctively by any supplied
// hints. The result is ordered by set abbreviation and collector number
// so repeated lookups on a fixed snapshot are deterministic.
func (s *Store) LookupPrinting(
	ctx context.Context, name string, hints carddb.Hints,
) ([]carddb.PrintingRecord, error) {
	query := `SELECT name, card_type, oracle_id, set_name,
    set_abbreviation, released_at, paper_legal, collector_number,
    rarity, scryfall_id
FROM ` + schema.ViewName + `
WHERE name = ?`
	args := []any{name}

	if hints.SetAbbreviation != "" {
		query += " AND set_abbreviation = ?"
		args = append(args, strings.ToLower(hints.SetAbbreviation))
	}
	if hints.CollectorNumber != "" {
		query += " AND collector_number = ?"
		args = append(args, hints.CollectorNumber)
	}
	query += " ORDER BY set_abbreviation, collector_number"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("lookup printing %q: %w", name, err)
	}
	defer rows.Close()

	var records []carddb.PrintingRecord
	for rows.Next() {
		var rec carddb.PrintingRecord
		var rarity string
		err = rows.Scan(
			&rec.Name, &rec.CardType, &rec.OracleID, &rec.SetName,
			&rec.SetAbbreviation, &rec.ReleasedAt, &rec.PaperLegal,
			&rec.CollectorNumber, &rarity, &rec.ScryfallID,
		)
		if err != nil {
			return nil, fmt.Errorf("lookup printing %q: %w", name, err)
		}
		rec.Rarity = carddb.Rarity(rarity)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("lookup printing %q: %w", name, err)
	}
	return records, nil
}
