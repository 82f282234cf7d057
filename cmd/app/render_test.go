package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"CardPulse/internal/domain/models"
)

func TestCardMarkdown(t *testing.T) {
	var hist models.PriceHistory
	for i := 1; i <= 10; i++ {
		hist = append(hist, models.PricePoint{Date: fmt.Sprintf("2024-01-%02d", i), Price: float64(i)})
	}
	c := &models.Card{
		Name: "Sol Ring", SetName: "Commander 2021", Set: "Commander 2021", Price: 2.5,
		RSI: 42, Recommendation: models.RecommendHold, Change: -1.25,
		PricesHistory: hist, Origin: models.OriginCatalog,
		MarketMetrics: models.MarketMetrics{Volume: "2M", Volatility: "Low", AIScore: 7.1},
	}
	md := cardMarkdown(c)
	for _, want := range []string{"# Sol Ring", "_Commander 2021_", "$2.50", "| 42 |", "HOLD", "-1.25%", "_source: catalog_"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Count(md, "\n| 2024-") != historyRows {
		t.Fatalf("history rows not capped:\n%s", md)
	}
}

func TestRenderRaw(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "# hi\n", true); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "# hi\n" {
		t.Fatalf("raw output altered: %q", buf.String())
	}
}

func TestNarrativeMarkdown(t *testing.T) {
	n := models.Narrative{Text: "a\nb\nc\nd\ne", Source: "template"}
	md := narrativeMarkdown(&models.Card{Name: "Sol Ring"}, n)
	if strings.Count(md, "\n- ") != models.NarrativeLines {
		t.Fatalf("expected %d bullets:\n%s", models.NarrativeLines, md)
	}
}
