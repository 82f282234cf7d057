package usecase

import (
	"context"
	"sync"
	"time"

	"CardPulse/internal/domain/models"
	domrepo "CardPulse/internal/domain/repository"
	applogger "CardPulse/pkg/logger"
)

// FeaturedSnapshot is the latest assembled set of featured cards.
type FeaturedSnapshot struct {
	Cards     []*models.Card `json:"cards"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// SnapshotPublisher receives every new featured snapshot.
type SnapshotPublisher interface {
	Publish(snap FeaturedSnapshot)
}

// FeaturedRefresher periodically rebuilds the featured snapshot.
type FeaturedRefresher struct {
	cards     *CardService
	log       *applogger.Logger
	metrics   domrepo.Metrics
	mu        sync.RWMutex
	snap      FeaturedSnapshot
	ready     bool
	publisher SnapshotPublisher
}

func NewFeaturedRefresher(cards *CardService, l *applogger.Logger, m domrepo.Metrics) *FeaturedRefresher {
	if l == nil {
		l = applogger.Nop()
	}
	return &FeaturedRefresher{cards: cards, log: l.Component("featured"), metrics: m}
}

// SetPublisher registers where new snapshots are pushed.
func (r *FeaturedRefresher) SetPublisher(p SnapshotPublisher) {
	r.mu.Lock()
	r.publisher = p
	r.mu.Unlock()
}

// Refresh fetches every featured card, stores and publishes the snapshot.
func (r *FeaturedRefresher) Refresh(ctx context.Context) (FeaturedSnapshot, error) {
	start := time.Now()
	cards, err := r.cards.FetchMany(ctx, r.cards.Featured())
	if err != nil {
		return FeaturedSnapshot{}, err
	}
	snap := FeaturedSnapshot{Cards: cards, UpdatedAt: time.Now().UTC()}

	r.mu.Lock()
	r.snap = snap
	r.ready = true
	pub := r.publisher
	r.mu.Unlock()

	if r.metrics != nil {
		for _, c := range cards {
			r.metrics.RecordLastPrice(c.Name, c.Price)
		}
		r.metrics.RecordLatency("featured_refresh", time.Since(start).Seconds())
	}
	r.log.Info("featured refreshed",
		applogger.Int("cards", len(cards)),
		applogger.Int("requested", len(r.cards.Featured())),
		applogger.Duration("took", time.Since(start)),
	)
	if pub != nil {
		pub.Publish(snap)
	}
	return snap, nil
}

// Snapshot returns the last snapshot and whether one exists yet.
func (r *FeaturedRefresher) Snapshot() (FeaturedSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap, r.ready
}
