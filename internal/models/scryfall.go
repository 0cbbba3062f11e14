package models

// ScryfallCard is the raw enrichment record as returned by Scryfall, kept at
// full fidelity. It is the value type of the on-disk card cache, so the JSON
// shape here is an integration contract with existing cache files.
type ScryfallCard struct {
	ID              string            `json:"id,omitempty"`
	OracleID        string            `json:"oracle_id,omitempty"`
	Name            string            `json:"name"`
	ManaCost        string            `json:"mana_cost,omitempty"`
	CMC             float64           `json:"cmc,omitempty"`
	Colors          []string          `json:"colors,omitempty"`
	ColorIdentity   []string          `json:"color_identity,omitempty"`
	TypeLine        string            `json:"type_line,omitempty"`
	Rarity          string            `json:"rarity,omitempty"`
	Set             string            `json:"set,omitempty"`
	SetName         string            `json:"set_name,omitempty"`
	CollectorNumber string            `json:"collector_number,omitempty"`
	ReleasedAt      string            `json:"released_at,omitempty"`
	OracleText      string            `json:"oracle_text,omitempty"`
	Power           string            `json:"power,omitempty"`
	Toughness       string            `json:"toughness,omitempty"`
	Loyalty         string            `json:"loyalty,omitempty"`
	Defense         string            `json:"defense,omitempty"`
	Artist          string            `json:"artist,omitempty"`
	FlavorText      string            `json:"flavor_text,omitempty"`
	Keywords        []string          `json:"keywords,omitempty"`
	ProducedMana    []string          `json:"produced_mana,omitempty"`
	Prices          ScryfallPrices    `json:"prices"`
	Legalities      map[string]string `json:"legalities,omitempty"`
	ImageURIs       *ScryfallImages   `json:"image_uris,omitempty"`
	CardFaces       []ScryfallFace    `json:"card_faces,omitempty"`
	ScryfallURI     string            `json:"scryfall_uri,omitempty"`

	ArenaID      *int `json:"arena_id,omitempty"`
	MTGOID       *int `json:"mtgo_id,omitempty"`
	TCGPlayerID  *int `json:"tcgplayer_id,omitempty"`
	CardmarketID *int `json:"cardmarket_id,omitempty"`

	Reserved       bool `json:"reserved,omitempty"`
	Digital        bool `json:"digital,omitempty"`
	Reprint        bool `json:"reprint,omitempty"`
	Promo          bool `json:"promo,omitempty"`
	FullArt        bool `json:"full_art,omitempty"`
	Textless       bool `json:"textless,omitempty"`
	Oversized      bool `json:"oversized,omitempty"`
	StorySpotlight bool `json:"story_spotlight,omitempty"`

	EDHRECRank *int `json:"edhrec_rank,omitempty"`
	PennyRank  *int `json:"penny_rank,omitempty"`
}

// ScryfallPrices carries prices as the decimal strings Scryfall sends.
// Null prices decode to the empty string.
type ScryfallPrices struct {
	USD       string `json:"usd,omitempty"`
	USDFoil   string `json:"usd_foil,omitempty"`
	USDEtched string `json:"usd_etched,omitempty"`
	EUR       string `json:"eur,omitempty"`
	EURFoil   string `json:"eur_foil,omitempty"`
	EUREtched string `json:"eur_etched,omitempty"`
	Tix       string `json:"tix,omitempty"`
}

type ScryfallImages struct {
	Small      string `json:"small,omitempty"`
	Normal     string `json:"normal,omitempty"`
	Large      string `json:"large,omitempty"`
	PNG        string `json:"png,omitempty"`
	ArtCrop    string `json:"art_crop,omitempty"`
	BorderCrop string `json:"border_crop,omitempty"`
}

// ScryfallFace covers double-faced cards, which carry images per face
type ScryfallFace struct {
	ImageURIs *ScryfallImages `json:"image_uris,omitempty"`
}

// Images returns the card's image URIs, falling back to the front face for
// double-faced cards which have no top-level image_uris.
func (c *ScryfallCard) Images() *ScryfallImages {
	if c.ImageURIs != nil {
		return c.ImageURIs
	}
	if len(c.CardFaces) > 0 && c.CardFaces[0].ImageURIs != nil {
		return c.CardFaces[0].ImageURIs
	}
	return nil
}
