// Package schema provides the relational models of the local card
// database and the ordered migration deltas between its versions.
package schema

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns an empty slice if no indexes are needed.
	IndexDDL() []string

	// TableName returns the SQLite table name for this model.
	TableName() string
}

// Card is the abstract card identity, stable across printings.
type Card struct {
	// ID is the surrogate row ID.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY"`

	// Name is the card's English name. Not unique: silver-bordered and
	// variant sets share names across distinct oracle identities.
	Name string `db:"name" ddl:"TEXT NOT NULL"`

	// CardType is the primary card type, e.g. "Creature".
	CardType string `db:"card_type" ddl:"TEXT NOT NULL DEFAULT ''"`

	// OracleID is the lowercase UUID identifying the card's rules
	// identity across all reprints.
	OracleID string `db:"oracle_id" ddl:"TEXT NOT NULL UNIQUE"`
}

// CardSet is one printed set.
type CardSet struct {
	// ID is the surrogate row ID.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY"`

	// Name is the full English set name.
	Name string `db:"name" ddl:"TEXT NOT NULL UNIQUE"`

	// Abbreviation is the set code, e.g. "lea".
	Abbreviation string `db:"abbreviation" ddl:"TEXT NOT NULL UNIQUE"`

	// ReleasedAt is the release date in YYYY-MM-DD form.
	ReleasedAt string `db:"released_at" ddl:"TEXT NOT NULL DEFAULT ''"`

	// PaperLegal is true when the set exists as paper product.
	PaperLegal bool `db:"paper_legal" ddl:"INTEGER NOT NULL DEFAULT 1"`
}

// Rarity is one member of the closed rarity enumeration, seeded at
// schema creation and never synced from the external source.
type Rarity struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY"`

	// Code is the single-letter rarity code.
	Code string `db:"code" ddl:"TEXT NOT NULL UNIQUE"`

	// Name is the display name, e.g. "Mythic".
	Name string `db:"name" ddl:"TEXT NOT NULL UNIQUE"`
}

// Printing is one physical or digital printing of a Card in a CardSet.
// (card_id, set_id, collector_number) is effectively unique in practice
// but not enforced by the database.
type Printing struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY"`

	CardID int64 `db:"card_id" ddl:"INTEGER NOT NULL REFERENCES cards(id)"`

	SetID int64 `db:"set_id" ddl:"INTEGER NOT NULL REFERENCES card_sets(id)"`

	// CollectorNumber is a string: alphanumeric suffixes like "86a"
	// occur even though most values look numeric.
	CollectorNumber string `db:"collector_number" ddl:"TEXT NOT NULL"`

	RarityID int64 `db:"rarity_id" ddl:"INTEGER NOT NULL REFERENCES rarities(id)"`

	// ScryfallID is the lowercase UUID identifying this specific
	// printing.
	ScryfallID string `db:"scryfall_id" ddl:"TEXT NOT NULL UNIQUE"`
}

// AllModels returns every table model in foreign-key creation order.
func AllModels() []DDLGenerator {
	return []DDLGenerator{
		Card{},
		CardSet{},
		Rarity{},
		Printing{},
	}
}
