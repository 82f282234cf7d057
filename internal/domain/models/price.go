package models

// HistoryWindow is the number of most recent raw history records considered.
const HistoryWindow = 30

// PricePoint is one day of price history.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// PriceHistory is ordered oldest first.
type PriceHistory []PricePoint

// Prices returns the price series.
func (h PriceHistory) Prices() []float64 {
	out := make([]float64, len(h))
	for i, p := range h {
		out[i] = p.Price
	}
	return out
}

// PriceSource names the tier that produced a best price.
type PriceSource string

const (
	SourceCache    PriceSource = "cache"
	SourceRemote   PriceSource = "remote"
	SourceFallback PriceSource = "fallback"
	SourceDefault  PriceSource = "default"
)

// PriceResult is the outcome of best-price resolution. Value is always > 0.5.
type PriceResult struct {
	Name   string      `json:"name"`
	Value  float64     `json:"value"`
	Source PriceSource `json:"source"`
}
