package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	r := NewWithRegisterer(prometheus.NewRegistry())
	r.RecordPriceSource("fallback")
	r.RecordPriceSource("fallback")
	r.RecordLookup("remote")

	if got := testutil.ToFloat64(r.priceSource.WithLabelValues("fallback")); got != 2 {
		t.Fatalf("fallback = %v", got)
	}
	if got := testutil.ToFloat64(r.lookups.WithLabelValues("remote")); got != 1 {
		t.Fatalf("remote = %v", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.RecordPriceSource("cache")
	r.RecordProviderError("scryfall")
	r.RecordLookup("catalog")
	r.RecordNarrative("template")
	r.RecordLastPrice("Sol Ring", 3)
	r.RecordLatency("refresh", 0.1)
}
