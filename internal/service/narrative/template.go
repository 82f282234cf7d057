package narrative

import (
	"fmt"
	"math"
	"strings"

	"CardPulse/internal/domain/models"
)

// Recommendation words shown in narratives.
const (
	WordBuy  = "COMPRAR"
	WordSell = "VENDER"
	WordHold = "MANTENER"
)

// Template is the deterministic five-line narrative used whenever no provider
// answer is available.
func Template(s models.Summary) string {
	rsi := int(math.Round(s.RSIValue()))
	set := orDefault(oneLine(s.Set), "N/A")
	kind := "una carta icónica"
	if s.IsPremium {
		kind = "una carta mítica icónica"
	}

	lines := [models.NarrativeLines]string{
		fmt.Sprintf("%s Análisis Técnico: RSI en %d, tendencia %s.", emoji(rsi), rsi, Trend(s.ChangeValue())),
		fmt.Sprintf("📘 Evaluación Fundamental: %q (%s) es %s.", oneLine(s.Name), set, kind),
		fmt.Sprintf("🎯 Recomendación Estratégica: %s.", Word(rsi)),
		fmt.Sprintf("📈 Proyección 30 días: ±%.1f%%", Projection(s)),
		fmt.Sprintf("⚠️ Factores Clave: Volatilidad %s, volumen %s, eventos MTG influyen.", orDefault(oneLine(s.Volatility), "Media"), orDefault(oneLine(s.Volume), "1M")),
	}
	return strings.Join(lines[:], "\n")
}

// Word maps a rounded RSI to the recommendation word, using the signal thresholds.
func Word(rsi int) string {
	switch {
	case rsi < models.OversoldRSI:
		return WordBuy
	case rsi > models.OverboughtRSI:
		return WordSell
	default:
		return WordHold
	}
}

func emoji(rsi int) string {
	switch {
	case rsi < models.OversoldRSI:
		return "🟢"
	case rsi > models.OverboughtRSI:
		return "🔴"
	default:
		return "🟡"
	}
}

// Trend describes the sign of a percent change.
func Trend(change float64) string {
	switch {
	case change > 0:
		return "alcista"
	case change < 0:
		return "bajista"
	default:
		return "lateral"
	}
}

// Projection is the 30-day projected move in percent, rounded to one decimal.
func Projection(s models.Summary) float64 {
	change := s.ChangeValue()
	if math.IsNaN(change) || math.IsInf(change, 0) {
		change = 0
	}
	return math.Round((math.Abs(change)*1.8+5)*10) / 10
}

// ClampLines keeps at most n non-blank lines and reports how many were kept.
func ClampLines(text string, n int) (string, int) {
	kept := make([]string, 0, n)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \r\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == n {
			break
		}
	}
	return strings.Join(kept, "\n"), len(kept)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// oneLine collapses runs of whitespace, newlines included, to single spaces.
func oneLine(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
