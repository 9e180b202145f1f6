// Package deck models a Magic: The Gathering deck list as the exchange
// format between input parsers, the card resolver and output writers.
package deck

import "strings"

// Card is a single deck entry. Parsers fill whatever fields the input
// format carries; the resolver completes the identifying ones before an
// output writer runs.
type Card struct {
	// Name is the card's English name.
	Name string

	// SetAbbreviation is the printed set code, empty when the input
	// format does not carry printings.
	SetAbbreviation string

	// CollectorNumber is the collector number within the set, as a
	// string so values like "86a" survive.
	CollectorNumber string

	// Language the physical card is printed in. Defaults to "EN".
	Language string

	Foil      bool
	Condition string
}

// Board names the deck zone a card belongs to.
type Board string

const (
	BoardMain    Board = "main"
	BoardSide    Board = "side"
	BoardMaybe   Board = "maybe"
	BoardAcquire Board = "acquire"
)

// Boards returns all zones in their fixed traversal order.
func Boards() []Board {
	return []Board{BoardMain, BoardSide, BoardMaybe, BoardAcquire}
}

// ParseBoard maps an input-format board label to its Board. The bool
// result is false for unknown labels.
func ParseBoard(s string) (Board, bool) {
	switch Board(strings.ToLower(strings.TrimSpace(s))) {
	case BoardMain:
		return BoardMain, true
	case BoardSide:
		return BoardSide, true
	case BoardMaybe:
		return BoardMaybe, true
	case BoardAcquire:
		return BoardAcquire, true
	}
	return "", false
}

// Deck is one deck list. A card appearing n times in a zone is stored
// as n entries, matching how list-based deck formats count copies.
type Deck struct {
	// Name of the deck, written by output formats that support it.
	Name string

	boards map[Board][]*Card

	// commanders is supplemental: a designated commander stays in its
	// board and is additionally referenced here.
	commanders []*Card
}

// New creates an empty deck.
func New(name string) *Deck {
	return &Deck{
		Name:   name,
		boards: make(map[Board][]*Card),
	}
}

// Add places card into board. A commander card is also registered in
// the command zone; it still occupies its slot in board.
func (d *Deck) Add(board Board, card *Card, commander bool) {
	if card.Language == "" {
		card.Language = "EN"
	}
	d.boards[board] = append(d.boards[board], card)
	if commander {
		d.commanders = append(d.commanders, card)
	}
}

// Cards returns the entries of one board in insertion order.
func (d *Deck) Cards(board Board) []*Card {
	return d.boards[board]
}

// Commanders returns the cards designated for the command zone.
func (d *Deck) Commanders() []*Card {
	return d.commanders
}

// AllCards returns every entry of every board in board traversal
// order. Commanders are not repeated; they already live in a board.
func (d *Deck) AllCards() []*Card {
	var all []*Card
	for _, board := range Boards() {
		all = append(all, d.boards[board]...)
	}
	return all
}

// Size returns the total number of entries across all boards.
func (d *Deck) Size() int {
	var n int
	for _, board := range Boards() {
		n += len(d.boards[board])
	}
	return n
}
