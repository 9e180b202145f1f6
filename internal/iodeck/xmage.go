package iodeck

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mtgtools/deckconv/pkg/deck"
)

// WriteXMage writes d in the XMage .dck format: an optional NAME
// header, one line per main-deck entry and one "SB: " prefixed line
// per sideboard entry. Every entry must carry a set abbreviation and a
// collector number; running the deck through a Converter first
// guarantees that. Maybe and acquire boards have no representation in
// the format and are not written.
func WriteXMage(w io.Writer, d *deck.Deck) error {
	bw := bufio.NewWriter(w)

	if d.Name != "" {
		fmt.Fprintf(bw, "NAME:%s\n", d.Name)
	}
	for _, card := range d.Cards(deck.BoardMain) {
		if err := writeXMageLine(bw, "", card); err != nil {
			return err
		}
	}
	for _, card := range d.Cards(deck.BoardSide) {
		if err := writeXMageLine(bw, "SB: ", card); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}

func writeXMageLine(w io.Writer, prefix string, card *deck.Card) error {
	if card.SetAbbreviation == "" || card.CollectorNumber == "" {
		return fmt.Errorf(
			"card %q is missing its printing; resolve the deck first",
			card.Name)
	}
	_, err := fmt.Fprintf(w, "%s1 [%s:%s] %s\n",
		prefix, card.SetAbbreviation, card.CollectorNumber, card.Name)
	if err != nil {
		return fmt.Errorf("write deck: %w", err)
	}
	return nil
}
