package carddb_test

import (
	"testing"

	"github.com/mtgtools/deckconv/pkg/carddb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOracleID   = "562d71b9-1646-474e-8293-55da6947a758"
	testScryfallID = "8c39f9b4-02b9-4d44-b8d6-4fd02ebbb0c5"
)

func validPayload() *carddb.CardPayload {
	return &carddb.CardPayload{
		Name:     "Lightning Bolt",
		CardType: "Instant",
		OracleID: testOracleID,
		Printings: []carddb.PrintingPayload{
			{
				SetName:         "Limited Edition Alpha",
				SetAbbreviation: "lea",
				ReleasedAt:      "1993-08-05",
				PaperLegal:      true,
				CollectorNumber: "161",
				Rarity:          carddb.RarityCommon,
				ScryfallID:      testScryfallID,
			},
		},
	}
}

func TestPayloadValidateOK(t *testing.T) {
	p := validPayload()
	require.NoError(t, p.Validate())
}

func TestPayloadValidateNormalizesUUIDs(t *testing.T) {
	p := validPayload()
	p.OracleID = "562D71B9-1646-474E-8293-55DA6947A758"
	p.Printings[0].ScryfallID = "8C39F9B4-02B9-4D44-B8D6-4FD02EBBB0C5"

	require.NoError(t, p.Validate())
	assert.Equal(t, testOracleID, p.OracleID)
	assert.Equal(t, testScryfallID, p.Printings[0].ScryfallID)
}

func TestPayloadValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*carddb.CardPayload)
	}{
		{"no name", func(p *carddb.CardPayload) { p.Name = "" }},
		{"bad oracle UUID", func(p *carddb.CardPayload) {
			p.OracleID = "562d71b9164647-4e8293-55da6947a758"
		}},
		{"no printings", func(p *carddb.CardPayload) { p.Printings = nil }},
		{"bad printing UUID", func(p *carddb.CardPayload) {
			p.Printings[0].ScryfallID = "not-a-uuid"
		}},
		{"no set", func(p *carddb.CardPayload) {
			p.Printings[0].SetAbbreviation = ""
		}},
		{"no collector number", func(p *carddb.CardPayload) {
			p.Printings[0].CollectorNumber = ""
		}},
		{"unknown rarity", func(p *carddb.CardPayload) {
			p.Printings[0].Rarity = carddb.Rarity("Legendary")
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload()
			tc.mutate(p)

			err := p.Validate()
			require.Error(t, err)
			kind, ok := carddb.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, carddb.IntegrityViolation, kind)
		})
	}
}

func TestRarityCodes(t *testing.T) {
	want := map[carddb.Rarity]string{
		carddb.RarityLand:     "L",
		carddb.RarityCommon:   "C",
		carddb.RarityUncommon: "U",
		carddb.RarityRare:     "R",
		carddb.RarityMythic:   "M",
		carddb.RaritySpecial:  "S",
		carddb.RarityBonus:    "B",
		carddb.RarityToken:    "T",
	}
	assert.Len(t, carddb.Rarities(), len(want))
	for r, code := range want {
		assert.True(t, r.Valid())
		assert.Equal(t, code, r.Code())
	}
	assert.False(t, carddb.Rarity("Epic").Valid())
	assert.Empty(t, carddb.Rarity("Epic").Code())
}

func TestParseRarity(t *testing.T) {
	r, ok := carddb.ParseRarity("mythic")
	require.True(t, ok)
	assert.Equal(t, carddb.RarityMythic, r)

	r, ok = carddb.ParseRarity(" Rare ")
	require.True(t, ok)
	assert.Equal(t, carddb.RarityRare, r)

	_, ok = carddb.ParseRarity("legendary")
	assert.False(t, ok)
}

func TestHintsIsEmpty(t *testing.T) {
	assert.True(t, carddb.Hints{}.IsEmpty())
	assert.False(t, carddb.Hints{SetAbbreviation: "lea"}.IsEmpty())
	assert.False(t, carddb.Hints{CollectorNumber: "161"}.IsEmpty())
}
