package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	applogger "CardPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Refresher is a job that rebuilds some cached state.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a function to Refresher.
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error { return f(ctx) }

// Scheduler runs refresh jobs on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	timeout time.Duration
	logger  *applogger.Logger
	running atomic.Int32
}

// New creates a scheduler whose jobs run under ctx, each bounded by timeout.
func New(ctx context.Context, timeout time.Duration, l *applogger.Logger) *Scheduler {
	if l == nil {
		l = applogger.Nop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:     ctx,
		timeout: timeout,
		logger:  l.Component("scheduler"),
	}
}

// Register adds a named job under a cron expression (five-field or @every).
func (s *Scheduler) Register(name, expr string, job Refresher) error {
	if _, err := s.cron.AddFunc(expr, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("register %s (%q): %w", name, expr, err)
	}
	s.logger.Info("job registered", applogger.String("job", name), applogger.String("schedule", expr))
	return nil
}

// RunNow executes a job synchronously outside the schedule.
func (s *Scheduler) RunNow(name string, job Refresher) {
	s.run(name, job)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts scheduling and waits for running jobs or ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out", applogger.Int("running", int(s.running.Load())))
	}
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(name string, job Refresher) {
	if s.ctx.Err() != nil {
		return
	}
	s.running.Add(1)
	defer s.running.Add(-1)

	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Refresh(ctx); err != nil {
		s.logger.Error("job failed", applogger.String("job", name), applogger.Error(err))
		return
	}
	s.logger.Debug("job done", applogger.String("job", name), applogger.Duration("took", time.Since(start)))
}
