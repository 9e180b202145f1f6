package carddb

import "strings"

// Rarity is the closed set of printing rarities. The set is fixed at
// schema-creation time and never synced from the external source.
type Rarity string

const (
	RarityLand     Rarity = "Land"
	RarityCommon   Rarity = "Common"
	RarityUncommon Rarity = "Uncommon"
	RarityRare     Rarity = "Rare"
	RarityMythic   Rarity = "Mythic"
	RaritySpecial  Rarity = "Special"
	RarityBonus    Rarity = "Bonus"
	RarityToken    Rarity = "Token"
)

// Rarities returns all members in their fixed seeding order.
func Rarities() []Rarity {
	return []Rarity{
		RarityLand, RarityCommon, RarityUncommon, RarityRare,
		RarityMythic, RaritySpecial, RarityBonus, RarityToken,
	}
}

var rarityCodes = map[Rarity]string{
	RarityLand:     "L",
	RarityCommon:   "C",
	RarityUncommon: "U",
	RarityRare:     "R",
	RarityMythic:   "M",
	RaritySpecial:  "S",
	RarityBonus:    "B",
	RarityToken:    "T",
}

// Valid reports whether r is a member of the closed rarity set.
func (r Rarity) Valid() bool {
	_, ok := rarityCodes[r]
	return ok
}

// Code returns the single-letter rarity code, empty for an invalid
// rarity.
func (r Rarity) Code() string {
	return rarityCodes[r]
}

// ParseRarity maps an external rarity word (Scryfall uses lowercase
// words such as "mythic") to its Rarity. The bool result is false for
// words outside the closed set.
func ParseRarity(s string) (Rarity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "land":
		return RarityLand, true
	case "common":
		return RarityCommon, true
	case "uncommon":
		return RarityUncommon, true
	case "rare":
		return RarityRare, true
	case "mythic":
		return RarityMythic, true
	case "special":
		return RaritySpecial, true
	case "bonus":
		return RarityBonus, true
	case "token":
		return RarityToken, true
	}
	return "", false
}
