// Package ioschema manages the card database schema: creation of fresh
// files at the current version and the ordered, all-or-nothing
// migration path for files written by earlier builds.
package ioschema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/mtgtools/deckconv/pkg/schema"
)

// Manager applies schema DDL against an open SQLite handle.
type Manager struct {
	db *sql.DB
}

// New creates a schema Manager for db.
func New(db *sql.DB) *Manager {
	return &Manager{db: db}
}

// Version reads the persisted schema version.
func (m *Manager) Version(ctx context.Context) (int, error) {
	var version int
	err := m.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Create writes the full current schema into an empty database: tables
// from the model DDL, indexes, the lookup view, the rarity seed and the
// version marker, all in one transaction.
func (m *Manager) Create(ctx context.Context) error {
	var stmts []string
	for _, model := range schema.AllModels() {
		stmts = append(stmts, model.TableDDL())
		stmts = append(stmts, model.IndexDDL()...)
	}
	stmts = append(stmts, schema.ViewDDL())
	stmts = append(stmts, schema.SeedDDL()...)

	return m.applyTx(ctx, stmts, schema.Version)
}

// Ensure compares the persisted version with the expected one. An older
// database gets every pending delta applied in order, each delta
// all-or-nothing with the version marker updated in the same
// transaction. A newer database is refused: downgrades are unsupported
// and risk silent data loss.
func (m *Manager) Ensure(ctx context.Context) error {
	version, err := m.Version(ctx)
	if err != nil {
		return err
	}

	if version > schema.Version {
		return carddb.SchemaMismatchError(version, schema.Version, nil)
	}
	if version == schema.Version {
		slog.Debug("Schema is current", "version", version)
		return nil
	}

	pending := schema.Pending(version)
	// A gap in the history would leave the store inconsistent.
	if len(pending) == 0 || pending[0].Version != version+1 {
		return carddb.SchemaMismatchError(version, schema.Version,
			fmt.Errorf("no migration path from version %d", version))
	}

	for _, mig := range pending {
		slog.Info("Applying schema migration",
			"version", mig.Version, "description", mig.Description)
		if err = m.applyTx(ctx, mig.Statements, mig.Version); err != nil {
			return fmt.Errorf(
				"migration to version %d: %w", mig.Version, err)
		}
	}
	return nil
}

// applyTx runs stmts and sets user_version inside one transaction.
func (m *Manager) applyTx(
	ctx context.Context, stmts []string, version int,
) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	// The pragma takes no bind parameters.
	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("PRAGMA user_version = %d", version))
	if err != nil {
		return fmt.Errorf("set schema version %d: %w", version, err)
	}

	return tx.Commit()
}
