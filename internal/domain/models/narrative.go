package models

// Summary is the structured card summary sent to the narrative generator.
// Only Name and Price are mandatory at the HTTP boundary.
type Summary struct {
	Name       string   `json:"name" validate:"required"`
	Set        string   `json:"set"`
	Price      *float64 `json:"price" validate:"required"`
	RSI        *float64 `json:"rsi"`
	Change     *float64 `json:"change"`
	Volatility string   `json:"volatility" default:"Media"`
	Volume     string   `json:"volume" default:"1M"`
	IsPremium  bool     `json:"isPremium"`
}

// PriceValue returns the price, or 0 when absent.
func (s Summary) PriceValue() float64 {
	if s.Price == nil {
		return 0
	}
	return *s.Price
}

// RSIValue returns the RSI, or the neutral 50 when absent.
func (s Summary) RSIValue() float64 {
	if s.RSI == nil {
		return NeutralRSI
	}
	return *s.RSI
}

// ChangeValue returns the percent change, or 0 when absent.
func (s Summary) ChangeValue() float64 {
	if s.Change == nil {
		return 0
	}
	return *s.Change
}

// NarrativeLines is the exact line count of every narrative.
const NarrativeLines = 5

// Narrative is generated commentary with the source that produced it.
type Narrative struct {
	Text   string `json:"analisis"`
	Source string `json:"-"` // openai, gemini or template
}

// AnalyzeResponse is the POST /api/analizar success body.
type AnalyzeResponse struct {
	Analisis string `json:"analisis"`
}
