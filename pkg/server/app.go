package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CardPulse/internal/handler/ws"
	"CardPulse/internal/scheduler"
	"CardPulse/internal/usecase"
	"CardPulse/pkg/config"
	xhttp "CardPulse/pkg/http"
	applogger "CardPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	refresher  *usecase.FeaturedRefresher
	hub        *ws.Hub
	closers    []io.Closer
}

// New creates a new App instance. closers are released after the HTTP server stops.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	refresher *usecase.FeaturedRefresher,
	hub *ws.Hub,
	closers ...io.Closer,
) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		logger:     l.Component("app"),
		httpServer: httpServer,
		refresher:  refresher,
		hub:        hub,
		closers:    closers,
	}
}

// HTTP exposes the configured server.
func (a *App) HTTP() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.New(ctx, a.refreshTimeout(), a.logger)
	if a.refresher != nil {
		if a.hub != nil {
			a.refresher.SetPublisher(a.hub)
		}
		job := scheduler.RefreshFunc(func(ctx context.Context) error {
			_, err := a.refresher.Refresh(ctx)
			return err
		})
		if err := sched.Register("featured", a.cfg.Featured.RefreshCron, job); err != nil {
			return err
		}
		// Warm the snapshot so the first websocket subscribers get data.
		go sched.RunNow("featured", job)
	}
	sched.Start()

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Int("featured", len(a.cfg.Featured.Names)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info("shutdown signal received", applogger.String("signal", sig.String()))
	case <-ctx.Done():
		a.logger.Info("context done, shutting down")
	}
	cancel()
	return a.shutdown(sched)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(sched *scheduler.Scheduler) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	sched.Stop(shutdownCtx)

	if a.hub != nil {
		a.hub.Close()
	}

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	for _, c := range a.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			a.logger.Warn("close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return firstErr
}

func (a *App) refreshTimeout() time.Duration {
	// A refresh touches every featured card, each bounded by the upstream timeout.
	per := a.cfg.Scryfall.Timeout
	if per <= 0 {
		per = 10 * time.Second
	}
	return per * 3
}
