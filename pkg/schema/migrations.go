package schema

// Version is the schema version this build expects, persisted in the
// database as PRAGMA user_version. Any structural change increments it.
// Stores at an older version must run the migration path before use;
// newer versions are refused, downgrades are unsupported.
const Version = 4

// Migration is one all-or-nothing structural delta. Applying it brings a
// database from Version-1 to Version. The history is strictly additive:
// columns and tables are only ever added, never dropped or retyped.
type Migration struct {
	// Version the database is at after this delta.
	Version int

	Description string

	// Statements executed in order inside a single transaction. The
	// user_version pragma is updated by the schema manager within the
	// same transaction.
	Statements []string
}

// Migrations returns the full ordered history, delta for version 1
// first. A freshly created store is written at the current Version
// directly from the model DDL; the history exists to upgrade files
// written by earlier builds.
func Migrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "base tables: cards, card_sets, printings",
			Statements: []string{
				`CREATE TABLE cards (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    oracle_id TEXT NOT NULL UNIQUE
);`,
				`CREATE TABLE card_sets (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    abbreviation TEXT NOT NULL UNIQUE
);`,
				`CREATE TABLE printings (
    id INTEGER PRIMARY KEY,
    card_id INTEGER NOT NULL REFERENCES cards(id),
    set_id INTEGER NOT NULL REFERENCES card_sets(id),
    collector_number TEXT NOT NULL,
    scryfall_id TEXT NOT NULL UNIQUE
);`,
				"CREATE INDEX idx_cards_name ON cards(name);",
				"CREATE INDEX idx_printings_card ON printings(card_id);",
				"CREATE INDEX idx_printings_set ON printings(set_id);",
			},
		},
		{
			Version:     2,
			Description: "set release dates and paper legality",
			Statements: []string{
				"ALTER TABLE card_sets ADD COLUMN released_at TEXT NOT NULL DEFAULT '';",
				"ALTER TABLE card_sets ADD COLUMN paper_legal INTEGER NOT NULL DEFAULT 1;",
			},
		},
		{
			Version:     3,
			Description: "rarity enumeration",
			Statements: append([]string{
				`CREATE TABLE rarities (
    id INTEGER PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL UNIQUE
);`,
			}, SeedDDL()...),
		},
		{
			Version:     4,
			Description: "card type, printing rarity, lookup view",
			Statements: []string{
				"ALTER TABLE cards ADD COLUMN card_type TEXT NOT NULL DEFAULT '';",
				"ALTER TABLE printings ADD COLUMN rarity_id INTEGER REFERENCES rarities(id);",
				"DROP VIEW IF EXISTS " + ViewName + ";",
				ViewDDL(),
			},
		},
	}
}

// Pending returns the deltas needed to bring a database at version from
// up to the current Version, in application order. It returns nil when
// nothing is pending, including the case of a too-new database, which
// the schema manager reports as a mismatch.
func Pending(from int) []Migration {
	if from >= Version {
		return nil
	}
	all := Migrations()
	var pending []Migration
	for _, m := range all {
		if m.Version > from {
			pending = append(pending, m)
		}
	}
	return pending
}
