package signals

import (
	"math"

	"CardPulse/internal/domain/models"
)

// RSI computes the relative strength index over the whole series.
//
// Steps up count as gains, steps down as losses and flat steps as neither.
// Fewer than two prices, or a series with no movement, yields the neutral 50.
// A series that never falls yields 100. The result is always within [0, 100].
func RSI(prices []float64) float64 {
	if len(prices) < 2 {
		return models.NeutralRSI
	}

	var gains, losses []float64
	for i := 1; i < len(prices); i++ {
		diff := prices[i] - prices[i-1]
		switch {
		case diff > 0:
			gains = append(gains, diff)
		case diff < 0:
			losses = append(losses, -diff)
		}
	}

	if len(gains) == 0 && len(losses) == 0 {
		return models.NeutralRSI
	}

	avgGain := mean(gains)
	avgLoss := mean(losses)
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return clamp(100-100/(1+rs), 0, 100)
}

// Recommend maps an RSI to a stance: below 30 buy, above 70 sell, hold otherwise.
func Recommend(rsi float64) models.Recommendation {
	switch {
	case rsi < models.OversoldRSI:
		return models.RecommendBuy
	case rsi > models.OverboughtRSI:
		return models.RecommendSell
	default:
		return models.RecommendHold
	}
}

// ChangePct is the percent move from the first to the last price.
// It is 0 for fewer than two prices or a zero first price.
func ChangePct(prices []float64) float64 {
	if len(prices) < 2 || prices[0] == 0 {
		return 0
	}
	first, last := prices[0], prices[len(prices)-1]
	return (last - first) / first * 100
}

// Compute derives the full signal set for a price series.
func Compute(prices []float64) models.SignalSet {
	rsi := RSI(prices)
	return models.SignalSet{
		RSI:            rsi,
		Recommendation: Recommend(rsi),
		ChangePct:      ChangePct(prices),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return models.NeutralRSI
	}
	return math.Max(lo, math.Min(hi, v))
}
