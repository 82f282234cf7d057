package signals

import (
	"math"
	"testing"

	"CardPulse/internal/domain/models"
)

func TestRSI(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{"empty", nil, 50},
		{"single", []float64{12}, 50},
		{"flat", []float64{5, 5, 5, 5}, 50},
		{"only gains", []float64{1, 2, 3, 4}, 100},
		{"gains and flat", []float64{1, 1, 2, 2}, 100},
		{"only losses", []float64{4, 3, 2, 1}, 0},
		// gains [5], losses [10 15]: rs = 5/12.5 = 0.4
		{"mixed", []float64{100, 90, 95, 80}, 100 - 100/1.4},
		{"balanced", []float64{10, 12, 10}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RSI(tt.prices)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("RSI(%v) = %v, want %v", tt.prices, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("RSI out of range: %v", got)
			}
		})
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		rsi  float64
		want models.Recommendation
	}{
		{0, models.RecommendBuy},
		{29.99, models.RecommendBuy},
		{30, models.RecommendHold},
		{50, models.RecommendHold},
		{70, models.RecommendHold},
		{70.01, models.RecommendSell},
		{100, models.RecommendSell},
	}
	for _, tt := range tests {
		if got := Recommend(tt.rsi); got != tt.want {
			t.Fatalf("Recommend(%v) = %s, want %s", tt.rsi, got, tt.want)
		}
	}
}

func TestChangePct(t *testing.T) {
	if got := ChangePct([]float64{100, 90, 95, 80}); got != -20 {
		t.Fatalf("got %v, want -20", got)
	}
	if got := ChangePct([]float64{42}); got != 0 {
		t.Fatalf("single point: %v", got)
	}
	if got := ChangePct([]float64{0, 10}); got != 0 {
		t.Fatalf("zero first price: %v", got)
	}
}

func TestCompute(t *testing.T) {
	s := Compute([]float64{100, 90, 95, 80})
	if math.Round(s.RSI) != 29 {
		t.Fatalf("rsi = %v", s.RSI)
	}
	if s.Recommendation != models.RecommendBuy {
		t.Fatalf("recommendation = %s", s.Recommendation)
	}
	if s.ChangePct != -20 {
		t.Fatalf("change = %v", s.ChangePct)
	}
}
