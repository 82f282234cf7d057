package narrative

import (
	"fmt"
	"math"
	"strings"

	"CardPulse/internal/domain/models"

	"github.com/shopspring/decimal"
)

var (
	supportFactor    = decimal.RequireFromString("0.9")
	resistanceFactor = decimal.RequireFromString("1.15")
)

// BuildPrompt renders the analyst prompt for s.
func BuildPrompt(s models.Summary) string {
	name := orDefault(s.Name, "Carta desconocida")
	set := orDefault(s.Set, "Edición no disponible")
	price := decimal.NewFromFloat(finite(s.PriceValue()))

	var b strings.Builder
	b.WriteString("Actúa como un analista financiero senior especializado en activos coleccionables.\n")
	fmt.Fprintf(&b, "Analiza %q (%s) y responde en exactamente %d líneas con emojis.\n\n", name, set, models.NarrativeLines)
	b.WriteString("Datos clave:\n")
	fmt.Fprintf(&b, "- Precio actual: $%s\n", price.StringFixed(2))
	fmt.Fprintf(&b, "- RSI técnico: %d\n", int(math.Round(s.RSIValue())))
	fmt.Fprintf(&b, "- Tendencia: %s\n", Trend(s.ChangeValue()))
	fmt.Fprintf(&b, "- Soporte: $%s\n", price.Mul(supportFactor).StringFixed(2))
	fmt.Fprintf(&b, "- Resistencia: $%s\n", price.Mul(resistanceFactor).StringFixed(2))
	fmt.Fprintf(&b, "- Volatilidad: %s, volumen: %s\n", orDefault(s.Volatility, "Media"), orDefault(s.Volume, "1M"))
	if s.IsPremium {
		b.WriteString("- Rareza: mítica\n")
	}
	b.WriteString("\nFormato de salida:\n")
	b.WriteString("🟢 Análisis Técnico: [RSI + tendencia]\n")
	b.WriteString("📘 Evaluación Fundamental: [rareza + demanda]\n")
	b.WriteString("🎯 Recomendación Estratégica: [acción clara]\n")
	fmt.Fprintf(&b, "📈 Proyección 30 días: ±%.1f%%\n", Projection(s))
	b.WriteString("⚠️ Factores Clave: [volatilidad + eventos]\n\n")
	fmt.Fprintf(&b, "Sé conciso. Máximo %d líneas.", models.NarrativeLines)
	return b.String()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
