// Package resolve maps human-entered card names plus optional hints to
// exactly one printing, consulting the local store first and the
// external source once on a miss. It is the sole entry point deck
// readers use to turn names into card identities.
package resolve

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mtgtools/deckconv/pkg/carddb"
)

type resolver struct {
	store  carddb.Store
	source carddb.SourceAdapter
}

// New creates a Resolver reading from store and filling local misses
// from source.
func New(store carddb.Store, source carddb.SourceAdapter) carddb.Resolver {
	return &resolver{store: store, source: source}
}

// Resolve looks the name up locally with its hints applied. A unique
// match wins. Zero matches trigger exactly one fetch-and-sync round
// against the source followed by one retry of the same lookup; the
// source is never consulted twice for one call, and a second miss is a
// NotFound failure. Multiple matches, before or after the fetch, are an
// Ambiguous failure carrying every candidate in a deterministic order.
func (r *resolver) Resolve(
	ctx context.Context, name string, hints carddb.Hints,
) (*carddb.PrintingRecord, error) {
	records, err := r.store.LookupPrinting(ctx, name, hints)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		slog.Debug("Card not in local store, fetching",
			"card", name, "hints", hints)
		if err = r.fetchAndSync(ctx, name, hints); err != nil {
			return nil, err
		}
		records, err = r.store.LookupPrinting(ctx, name, hints)
		if err != nil {
			return nil, err
		}
	}

	switch len(records) {
	case 0:
		// The source answered but nothing it sent matches the exact
		// name and hints, e.g. a case-insensitive remote match.
		return nil, carddb.NotFoundError(name)
	case 1:
		return &records[0], nil
	}

	sortCandidates(records)
	return nil, carddb.AmbiguousError(name, records)
}

func (r *resolver) fetchAndSync(
	ctx context.Context, name string, hints carddb.Hints,
) error {
	payloads, err := r.source.FetchCardByName(ctx, name, hints)
	if err != nil {
		return err
	}
	for _, payload := range payloads {
		if err = r.source.Sync(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

// sortCandidates orders an ambiguous candidate list by set
// abbreviation, then by collector number in natural order so that "9"
// precedes "86a" precedes "120".
func sortCandidates(records []carddb.PrintingRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.SetAbbreviation != b.SetAbbreviation {
			return a.SetAbbreviation < b.SetAbbreviation
		}
		return compareNatural(a.CollectorNumber, b.CollectorNumber) < 0
	})
}
