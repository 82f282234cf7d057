package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRegisterRejectsBadSchedule(t *testing.T) {
	s := New(context.Background(), 0, nil)
	if err := s.Register("bad", "not a schedule", RefreshFunc(func(context.Context) error { return nil })); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
}

func TestRunNowAppliesTimeout(t *testing.T) {
	s := New(context.Background(), 10*time.Millisecond, nil)
	var sawDeadline bool
	s.RunNow("probe", RefreshFunc(func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return errors.New("logged, not returned")
	}))
	if !sawDeadline {
		t.Fatalf("job ran without a deadline")
	}
}

func TestRunNowSkipsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(ctx, 0, nil)
	var calls atomic.Int32
	s.RunNow("probe", RefreshFunc(func(context.Context) error { calls.Add(1); return nil }))
	if calls.Load() != 0 {
		t.Fatalf("job ran after shutdown")
	}
}

func TestScheduledJobRuns(t *testing.T) {
	s := New(context.Background(), time.Second, nil)
	var calls atomic.Int32
	if err := s.Register("tick", "@every 1s", RefreshFunc(func(context.Context) error {
		calls.Add(1)
		return nil
	})); err != nil {
		t.Fatalf("register: %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	deadline := time.Now().Add(3 * time.Second)
	for calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("job never ran")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
