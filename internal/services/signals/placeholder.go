package signals

import (
	"fmt"
	"hash/fnv"

	"CardPulse/internal/domain/models"
	"CardPulse/pkg/util"
)

var volatilityLabels = [...]string{"High", "Medium", "Low"}

// HashMetrics derives stable placeholder market metrics from the card name,
// so the same card always shows the same figures.
type HashMetrics struct{}

func (HashMetrics) MetricsFor(name string) models.MarketMetrics {
	h := fnv.New64a()
	_, _ = h.Write([]byte(util.NormalizeKey(name)))
	sum := h.Sum64()

	return models.MarketMetrics{
		Volume:     fmt.Sprintf("%dM", sum%4),
		Volatility: volatilityLabels[(sum>>8)%uint64(len(volatilityLabels))],
		AIScore:    6 + float64((sum>>16)%31)/10,
	}
}
