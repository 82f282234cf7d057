package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects domain metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	priceSource    *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	narratives     *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a recorder registered on the default Prometheus registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		priceSource: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardpulse_price_resolutions_total",
				Help: "Best-price resolutions by winning source",
			},
			[]string{"source"},
		),
		providerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardpulse_provider_errors_total",
				Help: "Errors swallowed from a price or card provider",
			},
			[]string{"provider"},
		),
		lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardpulse_card_lookups_total",
				Help: "Card lookups by resolved origin",
			},
			[]string{"origin"},
		),
		narratives: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardpulse_narratives_total",
				Help: "Generated narratives by source",
			},
			[]string{"source"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cardpulse_featured_price",
				Help: "Last resolved price of a featured card",
			},
			[]string{"card"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cardpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordPriceSource counts which tier produced a best price.
func (r *Recorder) RecordPriceSource(source string) {
	if r == nil {
		return
	}
	r.priceSource.WithLabelValues(source).Inc()
}

// RecordProviderError counts a swallowed provider failure.
func (r *Recorder) RecordProviderError(provider string) {
	if r == nil {
		return
	}
	r.providerErrors.WithLabelValues(provider).Inc()
}

// RecordLookup counts a card lookup by origin ("catalog", "remote" or "miss").
func (r *Recorder) RecordLookup(origin string) {
	if r == nil {
		return
	}
	r.lookups.WithLabelValues(origin).Inc()
}

// RecordNarrative counts a narrative by source ("openai", "gemini" or "template").
func (r *Recorder) RecordNarrative(source string) {
	if r == nil {
		return
	}
	r.narratives.WithLabelValues(source).Inc()
}

// RecordLastPrice records the last price for a featured card.
func (r *Recorder) RecordLastPrice(card string, price float64) {
	if r == nil {
		return
	}
	r.lastPrice.WithLabelValues(card).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	if r == nil {
		return
	}
	r.latency.WithLabelValues(op).Observe(seconds)
}
