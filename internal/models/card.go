package models

import (
	"strings"
)

// Condition represents the physical condition of a card copy
type Condition string

const (
	ConditionMint             Condition = "Mint"
	ConditionNearMint         Condition = "Near Mint"
	ConditionLightlyPlayed    Condition = "Lightly Played"
	ConditionModeratelyPlayed Condition = "Moderately Played"
	ConditionHeavilyPlayed    Condition = "Heavily Played"
	ConditionDamaged          Condition = "Damaged"
)

// AllConditions returns all valid card conditions
func AllConditions() []Condition {
	return []Condition{
		ConditionMint,
		ConditionNearMint,
		ConditionLightlyPlayed,
		ConditionModeratelyPlayed,
		ConditionHeavilyPlayed,
		ConditionDamaged,
	}
}

// ParseCondition maps a condition string to a Condition.
// Unknown or empty values default to Near Mint (the Moxfield export default).
func ParseCondition(s string) Condition {
	s = strings.TrimSpace(s)
	for _, c := range AllConditions() {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return ConditionNearMint
}

// Finish represents the print finish of a card copy. Etched is a foil
// variant and prices like one.
type Finish string

const (
	FinishNonfoil Finish = ""
	FinishFoil    Finish = "foil"
	FinishEtched  Finish = "etched"
)

// IsFoil returns true for foil and etched finishes
func (f Finish) IsFoil() bool {
	return f == FinishFoil || f == FinishEtched
}

// ParseFinish maps a Foil CSV cell to a Finish.
// Empty, "false", "no" and "0" mean nonfoil; "etched" is etched;
// anything else (including "foil" and "Yes") means foil.
func ParseFinish(s string) Finish {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "no", "0":
		return FinishNonfoil
	case "etched":
		return FinishEtched
	default:
		return FinishFoil
	}
}

// Rarity is the Scryfall rarity classification
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
	RaritySpecial  Rarity = "special"
)

// CardPrices holds parsed market prices in the currencies Scryfall reports.
// A nil field means the market has no price for that printing.
type CardPrices struct {
	USD       *float64 `json:"usd,omitempty"`
	USDFoil   *float64 `json:"usd_foil,omitempty"`
	USDEtched *float64 `json:"usd_etched,omitempty"`
	EUR       *float64 `json:"eur,omitempty"`
	EURFoil   *float64 `json:"eur_foil,omitempty"`
	EUREtched *float64 `json:"eur_etched,omitempty"`
	Tix       *float64 `json:"tix,omitempty"`
}

// CardImages holds the image URL variants Scryfall serves for a card
type CardImages struct {
	Small      string `json:"small,omitempty"`
	Normal     string `json:"normal,omitempty"`
	Large      string `json:"large,omitempty"`
	PNG        string `json:"png,omitempty"`
	ArtCrop    string `json:"art_crop,omitempty"`
	BorderCrop string `json:"border_crop,omitempty"`
}

// CardKey is the identity of a card record within a collection.
// Foil and nonfoil printings of the same name+set are distinct records
// because they price differently.
type CardKey struct {
	Name    string
	SetCode string
	Foil    bool
}

// CardRecord is one line of a collection: the user-supplied fields from the
// CSV plus the enrichment fields populated from Scryfall. Name and SetCode
// never change after creation; everything else is mutable in place.
type CardRecord struct {
	// Identity + user-owned fields (from the collection CSV)
	Name          string    `json:"name"`
	SetCode       string    `json:"set_code"`
	Quantity      int       `json:"quantity"`
	Condition     Condition `json:"condition"`
	Finish        Finish    `json:"finish"`
	PurchasePrice *float64  `json:"purchase_price,omitempty"`

	// Enrichment fields, absent until enrichment runs
	Colors          []string          `json:"colors,omitempty"`
	ColorIdentity   []string          `json:"color_identity,omitempty"`
	Rarity          Rarity            `json:"rarity,omitempty"`
	TypeLine        string            `json:"type_line,omitempty"`
	ManaCost        string            `json:"mana_cost,omitempty"`
	CMC             *int              `json:"cmc,omitempty"`
	OracleText      string            `json:"oracle_text,omitempty"`
	Power           string            `json:"power,omitempty"`
	Toughness       string            `json:"toughness,omitempty"`
	Loyalty         string            `json:"loyalty,omitempty"`
	Defense         string            `json:"defense,omitempty"`
	Artist          string            `json:"artist,omitempty"`
	FlavorText      string            `json:"flavor_text,omitempty"`
	SetName         string            `json:"set_name,omitempty"`
	CollectorNumber string            `json:"collector_number,omitempty"`
	ReleasedAt      string            `json:"released_at,omitempty"`
	Keywords        []string          `json:"keywords,omitempty"`
	Prices          *CardPrices       `json:"prices,omitempty"`
	Legalities      map[string]string `json:"legalities,omitempty"`
	Images          *CardImages       `json:"images,omitempty"`

	// External identifiers
	ScryfallID   string `json:"scryfall_id,omitempty"`
	OracleID     string `json:"oracle_id,omitempty"`
	ArenaID      *int   `json:"arena_id,omitempty"`
	MTGOID       *int   `json:"mtgo_id,omitempty"`
	TCGPlayerID  *int   `json:"tcgplayer_id,omitempty"`
	CardmarketID *int   `json:"cardmarket_id,omitempty"`
	ScryfallURI  string `json:"scryfall_uri,omitempty"`

	// Boolean print flags
	Reserved       bool `json:"reserved,omitempty"`
	Digital        bool `json:"digital,omitempty"`
	Reprint        bool `json:"reprint,omitempty"`
	Promo          bool `json:"promo,omitempty"`
	FullArt        bool `json:"full_art,omitempty"`
	Textless       bool `json:"textless,omitempty"`
	Oversized      bool `json:"oversized,omitempty"`
	StorySpotlight bool `json:"story_spotlight,omitempty"`

	// Rankings
	EDHRECRank *int `json:"edhrec_rank,omitempty"`
	PennyRank  *int `json:"penny_rank,omitempty"`
}

// Key returns the collection identity key for this record
func (r *CardRecord) Key() CardKey {
	return CardKey{Name: r.Name, SetCode: r.SetCode, Foil: r.Finish.IsFoil()}
}

// IsEnriched reports whether enrichment has populated this record.
// A successful merge always sets ScryfallID, so it serves as the marker.
func (r *CardRecord) IsEnriched() bool {
	return r.ScryfallID != ""
}
