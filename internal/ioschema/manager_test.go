package ioschema

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/mtgtools/deckconv/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.db")
	db, err := sql.Open("sqlite",
		"file:"+path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestCreateFreshSchema(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	m := New(db)

	require.NoError(t, m.Create(ctx))

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, version)

	assert.ElementsMatch(t,
		[]string{"cards", "card_sets", "rarities", "printings"},
		tableNames(t, db))

	// Rarity seed is in place.
	var count int
	require.NoError(t,
		db.QueryRow("SELECT COUNT(*) FROM rarities").Scan(&count))
	assert.Equal(t, 8, count)

	// The lookup view exists and is queryable.
	_, err = db.Query("SELECT name FROM " + schema.ViewName)
	require.NoError(t, err)
}

func TestEnsureFromEmpty(t *testing.T) {
	ctx := context.Background()
	m := New(testDB(t))

	require.NoError(t, m.Ensure(ctx))

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, version)
}

// TestEnsureFromVersionBehind walks a database created at an old schema
// version through every pending delta in order.
func TestEnsureFromVersionBehind(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	m := New(db)

	// Build a version-2 database the way old releases left it.
	for _, mig := range schema.Migrations()[:2] {
		require.NoError(t, m.applyTx(ctx, mig.Statements, mig.Version))
	}
	version, err := m.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, version)

	require.NoError(t, m.Ensure(ctx))

	version, err = m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, version)

	// Columns added by later deltas are present.
	_, err = db.Exec(
		"INSERT INTO cards (name, card_type, oracle_id) VALUES (?, ?, ?)",
		"Storm Crow", "Creature", "11111111-2222-4333-8444-555555555555")
	require.NoError(t, err)

	// The rarity table was seeded by the version-3 delta.
	var count int
	require.NoError(t,
		db.QueryRow("SELECT COUNT(*) FROM rarities").Scan(&count))
	assert.Equal(t, 8, count)
}

func TestEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := New(testDB(t))

	require.NoError(t, m.Ensure(ctx))
	require.NoError(t, m.Ensure(ctx))

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.Version, version)
}

func TestEnsureRefusesNewerSchema(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	m := New(db)
	require.NoError(t, m.Create(ctx))

	_, err := db.Exec(
		fmt.Sprintf("PRAGMA user_version = %d", schema.Version+1))
	require.NoError(t, err)

	err = m.Ensure(ctx)
	require.Error(t, err)
	kind, ok := carddb.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, carddb.SchemaMismatch, kind)
	assert.Contains(t, err.Error(), "downgrade")
}

// TestMigratedSchemaMatchesFreshCreate verifies that the incremental
// history and the model DDL agree on the final column set.
func TestMigratedSchemaMatchesFreshCreate(t *testing.T) {
	ctx := context.Background()

	fresh := testDB(t)
	require.NoError(t, New(fresh).Create(ctx))

	migrated := testDB(t)
	require.NoError(t, New(migrated).Ensure(ctx))

	for _, table := range []string{
		"cards", "card_sets", "rarities", "printings",
	} {
		// ALTER TABLE appends columns, so compare as sets.
		assert.ElementsMatch(t,
			columnNames(t, fresh, table),
			columnNames(t, migrated, table),
			table)
	}
}

func columnNames(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query(
		fmt.Sprintf("PRAGMA table_info(%s)", table))
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notnull   int
			dflt      sql.NullString
			pk        int
		)
		require.NoError(t,
			rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}
