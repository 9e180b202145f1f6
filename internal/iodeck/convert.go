package iodeck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/mtgtools/deckconv/pkg/deck"
)

// Failure records one deck entry that could not be resolved to a
// single printing. Only recoverable failure kinds end up here.
type Failure struct {
	Name  string
	Hints carddb.Hints
	Err   error
}

// Report summarizes one conversion run.
type Report struct {
	// Resolved counts entries now carrying a full printing identity,
	// including entries that already had one.
	Resolved int

	// Failures lists distinct unresolvable entries. Copies of the same
	// card fail identically and are reported once.
	Failures []Failure
}

// Converter completes deck entries with printing identities.
type Converter struct {
	resolver carddb.Resolver
}

// NewConverter creates a Converter backed by resolver.
func NewConverter(resolver carddb.Resolver) *Converter {
	return &Converter{resolver: resolver}
}

// Resolve fills the set abbreviation and collector number of every
// entry in d, consulting the resolver with whatever identifying fields
// the entry already carries as hints. NotFound, Ambiguous and
// SourceUnavailable failures are collected per distinct entry and the
// run continues; an integrity or schema failure aborts immediately
// because later results could not be trusted.
func (c *Converter) Resolve(ctx context.Context, d *deck.Deck) (*Report, error) {
	report := &Report{}
	// Copies of a card resolve identically; remember the outcome per
	// distinct name-and-hints entry.
	type outcome struct {
		rec *carddb.PrintingRecord
		err error
	}
	seen := make(map[string]outcome)

	for _, card := range d.AllCards() {
		hints := carddb.Hints{
			SetAbbreviation: card.SetAbbreviation,
			CollectorNumber: card.CollectorNumber,
		}
		key := card.Name + "\x00" + hints.SetAbbreviation +
			"\x00" + hints.CollectorNumber

		out, ok := seen[key]
		if !ok {
			out.rec, out.err = c.resolver.Resolve(ctx, card.Name, hints)
			seen[key] = out

			if out.err != nil {
				if !carddb.IsRecoverable(out.err) {
					return nil, fmt.Errorf(
						"resolve %q: %w", card.Name, out.err)
				}
				slog.Warn("Could not resolve card",
					"card", card.Name, "error", out.err)
				report.Failures = append(report.Failures, Failure{
					Name:  card.Name,
					Hints: hints,
					Err:   out.err,
				})
			}
		}
		if out.err != nil {
			continue
		}

		card.SetAbbreviation = out.rec.SetAbbreviation
		card.CollectorNumber = out.rec.CollectorNumber
		report.Resolved++
	}
	return report, nil
}
