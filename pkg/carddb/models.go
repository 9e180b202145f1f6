// Package carddb defines the domain model of the local card database:
// cards, sets, printings, the lookup hints supplied by deck parsers, and
// the failure taxonomy shared by the store, the Scryfall adapter and the
// resolver.
package carddb

// Hints are optional caller-supplied disambiguators narrowing a
// name-based lookup. Empty fields mean "no constraint"; supplied fields
// are applied conjunctively and never used for ranking.
type Hints struct {
	// SetAbbreviation is the printed set code, e.g. "lea".
	SetAbbreviation string

	// CollectorNumber is the collector number within the set. It is a
	// string throughout the system: values like "86a" occur even though
	// most numbers look numeric.
	CollectorNumber string
}

// IsEmpty reports whether no hint fields are set.
func (h Hints) IsEmpty() bool {
	return h.SetAbbreviation == "" && h.CollectorNumber == ""
}

// PrintingRecord is one row of the printings view: a concrete printing
// joined with its card, set and rarity. It is the resolver's read type
// and the payload of a successful resolution.
type PrintingRecord struct {
	// Name is the card's English name as stored.
	Name string

	// CardType is the primary card type, e.g. "Creature".
	CardType string

	// OracleID is the stable identity of the card across all its
	// printings, a lowercase 8-4-4-4-12 UUID.
	OracleID string

	// SetName is the full English name of the printed set.
	SetName string

	// SetAbbreviation is the set's unique code.
	SetAbbreviation string

	// ReleasedAt is the set release date in YYYY-MM-DD form, empty when
	// unknown.
	ReleasedAt string

	// PaperLegal is true when the set exists as paper product.
	PaperLegal bool

	// CollectorNumber identifies the printing within its set.
	CollectorNumber string

	// Rarity of this printing.
	Rarity Rarity

	// ScryfallID identifies this specific printing, a lowercase
	// 8-4-4-4-12 UUID.
	ScryfallID string
}

// CardPayload is a fully normalized sync batch for a single card: the
// abstract card identity plus every printing the external source reported
// for it. It is built entirely in memory before any store write so that a
// rejected payload leaves the store untouched.
type CardPayload struct {
	Name      string
	CardType  string
	OracleID  string
	Printings []PrintingPayload
}

// PrintingPayload carries one printing of a CardPayload together with the
// set data needed to satisfy foreign-key ordering on apply.
type PrintingPayload struct {
	SetName         string
	SetAbbreviation string
	ReleasedAt      string
	PaperLegal      bool
	CollectorNumber string
	Rarity          Rarity
	ScryfallID      string
}

// Validate checks the payload invariants: both UUID kinds must be
// well-formed, the card must carry a name and at least one printing, and
// every printing needs a set abbreviation, a collector number and a known
// rarity. UUIDs are normalized to their lowercase canonical form in
// place. A violation is reported as an IntegrityViolation and the payload
// must not be applied.
func (p *CardPayload) Validate() error {
	if p.Name == "" {
		return IntegrityError("card payload has no name", nil)
	}
	oracle, err := NormalizeUUID(p.OracleID)
	if err != nil {
		return IntegrityError(
			"card "+p.Name+": malformed oracle UUID "+p.OracleID, err)
	}
	p.OracleID = oracle

	if len(p.Printings) == 0 {
		return IntegrityError("card "+p.Name+": payload has no printings", nil)
	}

	for i := range p.Printings {
		pr := &p.Printings[i]
		id, err := NormalizeUUID(pr.ScryfallID)
		if err != nil {
			return IntegrityError(
				"card "+p.Name+": malformed printing UUID "+pr.ScryfallID, err)
		}
		pr.ScryfallID = id

		if pr.SetAbbreviation == "" || pr.SetName == "" {
			return IntegrityError(
				"card "+p.Name+": printing "+pr.ScryfallID+" has no set", nil)
		}
		if pr.CollectorNumber == "" {
			return IntegrityError(
				"card "+p.Name+": printing "+pr.ScryfallID+
					" has no collector number", nil)
		}
		if !pr.Rarity.Valid() {
			return IntegrityError(
				"card "+p.Name+": unknown rarity "+string(pr.Rarity), nil)
		}
	}
	return nil
}
