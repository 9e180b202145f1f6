package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mtgtools/deckconv/pkg/carddb"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model interface{}, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))
}

// Card DDL methods
func (c Card) TableDDL() string {
	return generateDDL(c, "cards")
}

func (c Card) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_cards_name ON cards(name);",
	}
}

func (c Card) TableName() string {
	return "cards"
}

// CardSet DDL methods
func (cs CardSet) TableDDL() string {
	return generateDDL(cs, "card_sets")
}

func (cs CardSet) IndexDDL() []string {
	return []string{}
}

func (cs CardSet) TableName() string {
	return "card_sets"
}

// Rarity DDL methods
func (r Rarity) TableDDL() string {
	return generateDDL(r, "rarities")
}

func (r Rarity) IndexDDL() []string {
	return []string{}
}

func (r Rarity) TableName() string {
	return "rarities"
}

// Printing DDL methods
func (p Printing) TableDDL() string {
	return generateDDL(p, "printings")
}

func (p Printing) IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_printings_card ON printings(card_id);",
		"CREATE INDEX idx_printings_set ON printings(set_id);",
	}
}

func (p Printing) TableName() string {
	return "printings"
}

// ViewName is the read-only projection the resolver queries instead of
// joining tables by hand.
const ViewName = "printings_view"

// ViewDDL returns the CREATE VIEW statement joining cards, sets and
// rarities for name/set/collector-number lookups. The rarity join is an
// outer join: printings migrated from schema versions before 4 may not
// carry a rarity yet.
func ViewDDL() string {
	return `CREATE VIEW ` + ViewName + ` AS
SELECT
    cards.name AS name,
    cards.card_type AS card_type,
    cards.oracle_id AS oracle_id,
    card_sets.name AS set_name,
    card_sets.abbreviation AS set_abbreviation,
    card_sets.released_at AS released_at,
    card_sets.paper_legal AS paper_legal,
    printings.collector_number AS collector_number,
    COALESCE(rarities.name, '') AS rarity,
    printings.scryfall_id AS scryfall_id
FROM printings
JOIN cards ON cards.id = printings.card_id
JOIN card_sets ON card_sets.id = printings.set_id
LEFT JOIN rarities ON rarities.id = printings.rarity_id;`
}

// SeedDDL returns the INSERT statements that seed the closed rarity
// enumeration.
func SeedDDL() []string {
	rarities := carddb.Rarities()
	stmts := make([]string, 0, len(rarities))
	for _, r := range rarities {
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO rarities (code, name) VALUES ('%s', '%s');",
			r.Code(), string(r)))
	}
	return stmts
}
