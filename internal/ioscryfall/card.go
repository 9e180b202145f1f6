package ioscryfall

import (
	"strings"

	"github.com/mtgtools/deckconv/pkg/carddb"
)

// typeSeparator splits a Scryfall type line into its card types and its
// subtypes, e.g. "Legendary Creature — Human Wizard".
const typeSeparator = " — "

// scryfallCard is the subset of the Scryfall card object the converter
// consumes. One object describes one printing.
type scryfallCard struct {
	ID              string   `json:"id"`
	OracleID        string   `json:"oracle_id"`
	Name            string   `json:"name"`
	TypeLine        string   `json:"type_line"`
	Set             string   `json:"set"`
	SetName         string   `json:"set_name"`
	CollectorNumber string   `json:"collector_number"`
	Rarity          string   `json:"rarity"`
	ReleasedAt      string   `json:"released_at"`
	Games           []string `json:"games"`
	Lang            string   `json:"lang"`
}

// searchPage is one page of a /cards/search response.
type searchPage struct {
	Object     string         `json:"object"`
	TotalCards int            `json:"total_cards"`
	HasMore    bool           `json:"has_more"`
	NextPage   string         `json:"next_page"`
	Data       []scryfallCard `json:"data"`
}

// apiError is the error object Scryfall returns with non-200 statuses.
type apiError struct {
	Object  string `json:"object"`
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// primaryType extracts the card types from a full type line by cutting
// the subtype suffix, e.g. "Creature — Goblin" yields "Creature".
func primaryType(typeLine string) string {
	types, _, _ := strings.Cut(typeLine, typeSeparator)
	return strings.TrimSpace(types)
}

// paperLegal reports whether the printing exists as paper product.
func paperLegal(games []string) bool {
	for _, g := range games {
		if g == "paper" {
			return true
		}
	}
	return false
}

// printingPayload converts one Scryfall card object into a printing
// payload. The bool result is false when the object lacks a field the
// local schema requires, such as a rarity outside the closed set.
func printingPayload(c *scryfallCard) (carddb.PrintingPayload, bool) {
	rarity, ok := carddb.ParseRarity(c.Rarity)
	if !ok {
		return carddb.PrintingPayload{}, false
	}
	if c.ID == "" || c.Set == "" || c.SetName == "" ||
		c.CollectorNumber == "" {
		return carddb.PrintingPayload{}, false
	}
	return carddb.PrintingPayload{
		SetName:         c.SetName,
		SetAbbreviation: strings.ToLower(c.Set),
		ReleasedAt:      c.ReleasedAt,
		PaperLegal:      paperLegal(c.Games),
		CollectorNumber: c.CollectorNumber,
		Rarity:          rarity,
		ScryfallID:      c.ID,
	}, true
}

// cardPayload wraps a single Scryfall printing into a one-printing card
// payload, used by the bulk importer where objects arrive printing by
// printing rather than grouped by card.
func cardPayload(c *scryfallCard) (*carddb.CardPayload, bool) {
	pr, ok := printingPayload(c)
	if !ok {
		return nil, false
	}
	if c.Name == "" || c.OracleID == "" {
		return nil, false
	}
	return &carddb.CardPayload{
		Name:      c.Name,
		CardType:  primaryType(c.TypeLine),
		OracleID:  c.OracleID,
		Printings: []carddb.PrintingPayload{pr},
	}, true
}
