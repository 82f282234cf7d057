package models

// Recommendation is the trading stance derived from RSI.
type Recommendation string

const (
	RecommendBuy  Recommendation = "buy"
	RecommendSell Recommendation = "sell"
	RecommendHold Recommendation = "hold"
)

// RSI thresholds shared by the signal calculator and the narrative template.
const (
	OversoldRSI   = 30
	OverboughtRSI = 70
	NeutralRSI    = 50
)

// SignalSet is derived from a price history and never cached.
type SignalSet struct {
	RSI            float64        `json:"rsi"` // 0..100
	Recommendation Recommendation `json:"recommendation"`
	ChangePct      float64        `json:"change"`
}
