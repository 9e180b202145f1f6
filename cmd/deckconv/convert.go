package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtgtools/deckconv/internal/iodeck"
	"github.com/mtgtools/deckconv/internal/ioscryfall"
	"github.com/mtgtools/deckconv/internal/iostore"
	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/mtgtools/deckconv/pkg/resolve"
)

var (
	convertOutput   string
	convertDeckName string
	convertOffline  bool
)

func getConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <deck.csv>",
		Short: "Convert a TappedOut CSV deck export to an XMage deck file",
		Long: `Convert a deck list exported from tappedout.net (CSV) into the
XMage .dck format.

Every card is resolved to one concrete printing. Cards not yet in the
local card database are fetched from Scryfall once and cached. A card
that cannot be resolved to exactly one printing is reported together
with its matching printings; the output file is only written when the
whole deck resolves.

Examples:
  deckconv convert burn.csv
  deckconv convert burn.csv -o burn.dck --name "Burn"
  deckconv convert edh.csv --offline`,
		Args: cobra.ExactArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().StringVarP(&convertOutput, "output", "o", "",
		"output file (default: input name with .dck extension)")
	cmd.Flags().StringVar(&convertDeckName, "name", "",
		"deck name written to the output file")
	cmd.Flags().BoolVar(&convertOffline, "offline", false,
		"resolve against the local database only, never contact Scryfall")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := getConfig(cmd)

	input := args[0]
	output := convertOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".dck"
	}

	st, err := iostore.Open(ctx, &cfg.Database)
	if err != nil {
		return decorateStoreErr(err)
	}
	defer st.Close()

	var source carddb.SourceAdapter = ioscryfall.New(&cfg.Scryfall, st)
	if convertOffline {
		source = offlineSource{}
	}
	resolver := resolve.New(st, source)

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open deck list: %w", err)
	}
	defer in.Close()

	d, err := iodeck.ParseTappedOut(in)
	if err != nil {
		return err
	}
	d.Name = convertDeckName

	report, err := iodeck.NewConverter(resolver).Resolve(ctx, d)
	if err != nil {
		return decorateStoreErr(err)
	}
	if len(report.Failures) > 0 {
		printFailures(report.Failures)
		return fmt.Errorf("%d card(s) could not be resolved",
			len(report.Failures))
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err = iodeck.WriteXMage(out, d); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d cards)\n", output, report.Resolved)
	return nil
}

func printFailures(failures []iodeck.Failure) {
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "cannot resolve %q", f.Name)
		if !f.Hints.IsEmpty() {
			fmt.Fprintf(os.Stderr, " (set %q, number %q)",
				f.Hints.SetAbbreviation, f.Hints.CollectorNumber)
		}
		fmt.Fprintf(os.Stderr, ": %v\n", f.Err)

		for _, c := range carddb.CandidatesOf(f.Err) {
			fmt.Fprintf(os.Stderr, "  candidate: [%s:%s] %s (%s)\n",
				c.SetAbbreviation, c.CollectorNumber, c.Name, c.SetName)
		}
	}
}

// decorateStoreErr adds a next-step hint to schema version failures.
func decorateStoreErr(err error) error {
	if kind, ok := carddb.KindOf(err); ok && kind == carddb.SchemaMismatch {
		return fmt.Errorf("%w\n\nRun 'deckconv db update' to migrate the card database", err)
	}
	return err
}

// offlineSource refuses every fetch so resolution stays local.
type offlineSource struct{}

func (offlineSource) FetchCardByName(
	_ context.Context, name string, _ carddb.Hints,
) ([]*carddb.CardPayload, error) {
	return nil, carddb.NotFoundError(name)
}

func (offlineSource) Sync(context.Context, *carddb.CardPayload) error {
	return nil
}
