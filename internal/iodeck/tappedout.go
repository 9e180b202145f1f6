// Package iodeck reads and writes deck-list file formats: the
// TappedOut CSV export as input and the XMage .dck format as output.
// The resolution step between them lives in convert.go.
package iodeck

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mtgtools/deckconv/pkg/deck"
)

// Column indices of the TappedOut CSV export. The field names are set
// here rather than read from the file because the generated header
// contains a typo ("Languange").
const (
	colBoard = iota
	colQty
	colName
	colPrinting
	colFoil
	colAlter
	colSigned
	colCondition
	colLanguage
	columnCount
)

// ParseTappedOut reads a tappedout.net CSV deck export. TappedOut
// escapes quotes by doubling them, the encoding/csv default, verified
// against an export containing `"Ach! Hans, Run!"`. A row with
// quantity n yields n entries in its board. The export carries no
// commander designation, so none is set.
func ParseTappedOut(r io.Reader) (*deck.Deck, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = columnCount

	// Skip the header row.
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("deck CSV is empty")
		}
		return nil, fmt.Errorf("read deck CSV header: %w", err)
	}

	d := deck.New("")
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read deck CSV line %d: %w", line, err)
		}

		board, ok := deck.ParseBoard(record[colBoard])
		if !ok {
			return nil, fmt.Errorf(
				"deck CSV line %d: unknown board %q", line, record[colBoard])
		}
		qty, err := strconv.Atoi(record[colQty])
		if err != nil || qty < 1 {
			return nil, fmt.Errorf(
				"deck CSV line %d: bad quantity %q", line, record[colQty])
		}
		if record[colName] == "" {
			return nil, fmt.Errorf("deck CSV line %d: empty card name", line)
		}

		for range qty {
			d.Add(board, &deck.Card{
				Name:            record[colName],
				SetAbbreviation: record[colPrinting],
				Language:        record[colLanguage],
				Foil:            record[colFoil] != "",
				Condition:       record[colCondition],
			}, false)
		}
	}
	return d, nil
}
