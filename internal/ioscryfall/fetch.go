package ioscryfall

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mtgtools/deckconv/pkg/carddb"
)

// maxSearchPages bounds next_page chasing. Even heavily reprinted cards
// fit in a handful of 175-card pages.
const maxSearchPages = 10

// FetchCardByName queries the card search endpoint for an exact,
// case-sensitive match of name and returns every printing the source
// reports, grouped into one payload per oracle identity in first-seen
// order. Variant sets reuse names across distinct oracle IDs. Hints
// narrow the search query the same way they narrow a local lookup. A
// name unknown to the source is a NotFound failure; transport and
// decoding problems are SourceUnavailable.
func (c *Client) FetchCardByName(
	ctx context.Context, name string, hints carddb.Hints,
) ([]*carddb.CardPayload, error) {
	query := fmt.Sprintf("!%q game:paper", name)
	if hints.SetAbbreviation != "" {
		query += " e:" + strings.ToLower(hints.SetAbbreviation)
	}
	if hints.CollectorNumber != "" {
		query += fmt.Sprintf(" cn:%q", hints.CollectorNumber)
	}

	next := c.cfg.BaseURL + "/cards/search?" + url.Values{
		"q":      {query},
		"unique": {"prints"},
		"order":  {"released"},
	}.Encode()

	byOracle := make(map[string]*carddb.CardPayload)
	var order []string
	for page := 0; next != "" && page < maxSearchPages; page++ {
		var sp searchPage
		if err := c.get(ctx, next, &sp); err != nil {
			if errors.Is(err, errNotFound) {
				return nil, carddb.NotFoundError(name)
			}
			return nil, err
		}

		for i := range sp.Data {
			card := &sp.Data[i]
			// The exact-name operator is case-insensitive on the
			// source side; the local contract is stricter.
			if card.Name != name {
				continue
			}
			pr, ok := printingPayload(card)
			if !ok {
				continue
			}
			payload, seen := byOracle[card.OracleID]
			if !seen {
				payload = &carddb.CardPayload{
					Name:     card.Name,
					CardType: primaryType(card.TypeLine),
					OracleID: card.OracleID,
				}
				byOracle[card.OracleID] = payload
				order = append(order, card.OracleID)
			}
			payload.Printings = append(payload.Printings, pr)
		}

		next = ""
		if sp.HasMore {
			next = sp.NextPage
		}
	}

	if len(order) == 0 {
		return nil, carddb.NotFoundError(name)
	}
	payloads := make([]*carddb.CardPayload, len(order))
	for i, id := range order {
		payloads[i] = byOracle[id]
	}
	return payloads, nil
}
