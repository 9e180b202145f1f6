package iodeck

import (
	"context"
	"testing"

	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/mtgtools/deckconv/pkg/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver answers from a fixed table keyed by card name and
// counts calls per name.
type fakeResolver struct {
	records map[string]carddb.PrintingRecord
	errs    map[string]error
	calls   map[string]int
}

func (f *fakeResolver) Resolve(
	_ context.Context, name string, _ carddb.Hints,
) (*carddb.PrintingRecord, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if rec, ok := f.records[name]; ok {
		return &rec, nil
	}
	return nil, carddb.NotFoundError(name)
}

func TestConverterFillsPrintings(t *testing.T) {
	d := deck.New("")
	for range 4 {
		d.Add(deck.BoardMain, &deck.Card{Name: "Lightning Bolt"}, false)
	}
	d.Add(deck.BoardSide, &deck.Card{Name: "Duress"}, false)

	r := &fakeResolver{records: map[string]carddb.PrintingRecord{
		"Lightning Bolt": {
			Name: "Lightning Bolt", SetAbbreviation: "m10",
			CollectorNumber: "146",
		},
		"Duress": {
			Name: "Duress", SetAbbreviation: "m19",
			CollectorNumber: "94",
		},
	}}

	report, err := NewConverter(r).Resolve(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Resolved)
	assert.Empty(t, report.Failures)

	for _, card := range d.Cards(deck.BoardMain) {
		assert.Equal(t, "m10", card.SetAbbreviation)
		assert.Equal(t, "146", card.CollectorNumber)
	}
	assert.Equal(t, 1, r.calls["Lightning Bolt"],
		"copies of a card resolve once")
}

func TestConverterCollectsRecoverableFailures(t *testing.T) {
	d := deck.New("")
	d.Add(deck.BoardMain, &deck.Card{Name: "Lightning Bolt"}, false)
	d.Add(deck.BoardMain, &deck.Card{Name: "Lightnign Bolt"}, false)
	d.Add(deck.BoardMain, &deck.Card{Name: "Lightnign Bolt"}, false)

	r := &fakeResolver{
		records: map[string]carddb.PrintingRecord{
			"Lightning Bolt": {
				Name: "Lightning Bolt", SetAbbreviation: "m10",
				CollectorNumber: "146",
			},
		},
	}

	report, err := NewConverter(r).Resolve(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Resolved)
	require.Len(t, report.Failures, 1, "identical copies fail once")
	assert.Equal(t, "Lightnign Bolt", report.Failures[0].Name)
	kind, _ := carddb.KindOf(report.Failures[0].Err)
	assert.Equal(t, carddb.NotFound, kind)
}

func TestConverterAbortsOnFatalFailure(t *testing.T) {
	d := deck.New("")
	d.Add(deck.BoardMain, &deck.Card{Name: "Lightning Bolt"}, false)

	r := &fakeResolver{errs: map[string]error{
		"Lightning Bolt": carddb.SchemaMismatchError(5, 4, nil),
	}}

	_, err := NewConverter(r).Resolve(context.Background(), d)
	require.Error(t, err)
	kind, ok := carddb.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, carddb.SchemaMismatch, kind)
}

func TestConverterKeepsExistingPrintingAsHints(t *testing.T) {
	d := deck.New("")
	d.Add(deck.BoardMain, &deck.Card{
		Name:            "Lightning Bolt",
		SetAbbreviation: "LEA",
	}, false)

	var gotHints carddb.Hints
	r := &hintRecorder{rec: carddb.PrintingRecord{
		Name: "Lightning Bolt", SetAbbreviation: "lea",
		CollectorNumber: "161",
	}, hints: &gotHints}

	report, err := NewConverter(r).Resolve(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Resolved)
	assert.Equal(t, "LEA", gotHints.SetAbbreviation)

	card := d.Cards(deck.BoardMain)[0]
	assert.Equal(t, "lea", card.SetAbbreviation,
		"entry takes the stored spelling")
	assert.Equal(t, "161", card.CollectorNumber)
}

type hintRecorder struct {
	rec   carddb.PrintingRecord
	hints *carddb.Hints
}

func (h *hintRecorder) Resolve(
	_ context.Context, _ string, hints carddb.Hints,
) (*carddb.PrintingRecord, error) {
	*h.hints = hints
	return &h.rec, nil
}
