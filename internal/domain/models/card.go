package models

import "strings"

// Card origins.
const (
	OriginCatalog = "catalog"
	OriginRemote  = "remote"
)

// RarityMythic marks premium cards.
const RarityMythic = "mythic"

// CardRecord is a catalog entry, either loaded from the local catalog document
// or synthesized from a remote lookup. Field tags follow the catalog file.
type CardRecord struct {
	Name       string   `json:"name"`
	SetCode    string   `json:"set,omitempty"`
	SetName    string   `json:"set_name"`
	PriceUSD   *float64 `json:"price_usd"`
	ImageURL   string   `json:"image_url"`
	Rarity     string   `json:"rarity"`
	OracleText string   `json:"oracle_text,omitempty"`
	Origin     string   `json:"-"`
}

// HasPrice reports whether the record carries a usable USD price.
func (r CardRecord) HasPrice() bool {
	return r.PriceUSD != nil
}

// IsPremium reports whether the card counts as premium (mythic rarity).
func (r CardRecord) IsPremium() bool {
	return strings.EqualFold(r.Rarity, RarityMythic)
}

// PlaceholderImage is used when a record has no image.
const PlaceholderImage = "/placeholder.svg"

// MarketMetrics are the placeholder market figures shown next to a card.
type MarketMetrics struct {
	Volume     string  `json:"volume"`
	Volatility string  `json:"volatility"`
	AIScore    float64 `json:"aiScore"`
}

// Card is a catalog record assembled with its price history and signals.
type Card struct {
	Name           string         `json:"name"`
	SetName        string         `json:"setName"`
	Set            string         `json:"set"`
	PriceUSD       *float64       `json:"priceUsd"`
	Price          float64        `json:"price"`
	ImageURL       string         `json:"imageUrl"`
	Rarity         string         `json:"rarity,omitempty"`
	Origin         string         `json:"origin"`
	PricesHistory  PriceHistory   `json:"pricesHistory"`
	RSI            int            `json:"rsi"`
	Recommendation Recommendation `json:"recommendation"`
	Change         float64        `json:"change"`
	IsPremium      bool           `json:"isPremium"`
	MarketMetrics
}

// Summary returns the narrative input for this card.
func (c *Card) Summary() Summary {
	rsi := float64(c.RSI)
	change := c.Change
	return Summary{
		Name:       c.Name,
		Set:        c.Set,
		Price:      &c.Price,
		RSI:        &rsi,
		Change:     &change,
		Volatility: c.Volatility,
		Volume:     c.Volume,
		IsPremium:  c.IsPremium,
	}
}

// SearchResult is the featured-search response.
type SearchResult struct {
	Cards   []*Card `json:"cards"`
	HasMore bool    `json:"hasMore"`
}
