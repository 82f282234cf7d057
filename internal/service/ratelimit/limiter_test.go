package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterBurstAndRefill(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(2, 1)
	l.now = func() time.Time { return now }

	if !l.Allow("1.2.3.4") || !l.Allow("1.2.3.4") {
		t.Fatalf("burst of 2 should be allowed")
	}
	if l.Allow("1.2.3.4") {
		t.Fatalf("third call should be limited")
	}
	if !l.Allow("5.6.7.8") {
		t.Fatalf("keys must not share buckets")
	}

	now = now.Add(1500 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Fatalf("token should have refilled")
	}
	if l.Allow("1.2.3.4") {
		t.Fatalf("only one token refilled")
	}
}

func TestLimiterDropsIdleBuckets(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(2, 1)
	l.now = func() time.Time { return now }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		l.Allow(ip)
	}
	// An exhausted key is dropped too once it has had time to refill.
	l.Allow("10.0.0.4")
	l.Allow("10.0.0.4")
	if l.Len() != 4 {
		t.Fatalf("len = %d, want 4", l.Len())
	}

	now = now.Add(sweepEvery)
	l.Allow("10.0.0.5")
	// Everyone refilled within the minute, so only the new key remains.
	if l.Len() != 1 {
		t.Fatalf("len after sweep = %d, want 1", l.Len())
	}
}

func TestLimiterKeepsBucketsWithoutRefill(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := New(1, 0)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(2 * sweepEvery)
	if l.Allow("10.0.0.1") {
		t.Fatalf("exhausted key reset by sweep")
	}
}
