package schema_test

import (
	"strings"
	"testing"

	"github.com/mtgtools/deckconv/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCardTableDDL tests DDL generation for the Card model.
func TestCardTableDDL(t *testing.T) {
	ddl := schema.Card{}.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE cards")
	assert.Contains(t, ddl, "id INTEGER PRIMARY KEY")
	assert.Contains(t, ddl, "name TEXT NOT NULL")
	assert.Contains(t, ddl, "oracle_id TEXT NOT NULL UNIQUE")

	// Names are shared across distinct oracle identities, so the name
	// column must not be unique.
	assert.NotContains(t, ddl, "name TEXT NOT NULL UNIQUE")
}

func TestCardSetTableDDL(t *testing.T) {
	ddl := schema.CardSet{}.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE card_sets")
	assert.Contains(t, ddl, "name TEXT NOT NULL UNIQUE")
	assert.Contains(t, ddl, "abbreviation TEXT NOT NULL UNIQUE")
	assert.Contains(t, ddl, "released_at TEXT")
	assert.Contains(t, ddl, "paper_legal INTEGER")
}

func TestPrintingTableDDL(t *testing.T) {
	ddl := schema.Printing{}.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE printings")
	assert.Contains(t, ddl, "card_id INTEGER NOT NULL REFERENCES cards(id)")
	assert.Contains(t, ddl, "set_id INTEGER NOT NULL REFERENCES card_sets(id)")
	assert.Contains(t, ddl, "rarity_id INTEGER NOT NULL REFERENCES rarities(id)")
	// Collector numbers are strings: "86a" occurs.
	assert.Contains(t, ddl, "collector_number TEXT NOT NULL")
	assert.Contains(t, ddl, "scryfall_id TEXT NOT NULL UNIQUE")
}

func TestTableNames(t *testing.T) {
	names := []string{}
	for _, m := range schema.AllModels() {
		names = append(names, m.TableName())
	}
	assert.Equal(t,
		[]string{"cards", "card_sets", "rarities", "printings"}, names)
}

func TestViewDDL(t *testing.T) {
	ddl := schema.ViewDDL()

	assert.Contains(t, ddl, "CREATE VIEW printings_view")
	for _, col := range []string{
		"name", "card_type", "oracle_id", "set_name", "set_abbreviation",
		"released_at", "paper_legal", "collector_number", "rarity",
		"scryfall_id",
	} {
		assert.Contains(t, ddl, "AS "+col, col)
	}
	// Legacy printings may lack a rarity.
	assert.Contains(t, ddl, "LEFT JOIN rarities")
}

func TestSeedDDL(t *testing.T) {
	stmts := schema.SeedDDL()
	require.Len(t, stmts, 8)
	assert.Contains(t, stmts[0], "'L', 'Land'")
	assert.Contains(t, stmts[4], "'M', 'Mythic'")
	for _, s := range stmts {
		assert.True(t, strings.HasPrefix(s, "INSERT INTO rarities"), s)
	}
}

// TestMigrationHistory verifies the ordered additive history.
func TestMigrationHistory(t *testing.T) {
	all := schema.Migrations()
	require.Len(t, all, schema.Version)

	for i, m := range all {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.Description)
		assert.NotEmpty(t, m.Statements)

		// Additive only: nothing is ever dropped except view rebuilds.
		for _, stmt := range m.Statements {
			if strings.HasPrefix(stmt, "DROP") {
				assert.Contains(t, stmt, "DROP VIEW", stmt)
			}
		}
	}
}

func TestPending(t *testing.T) {
	assert.Len(t, schema.Pending(0), schema.Version)
	assert.Len(t, schema.Pending(2), 2)
	assert.Nil(t, schema.Pending(schema.Version))
	assert.Nil(t, schema.Pending(schema.Version+3))

	pending := schema.Pending(1)
	require.Len(t, pending, 3)
	assert.Equal(t, 2, pending[0].Version)
	assert.Equal(t, 4, pending[2].Version)
}
