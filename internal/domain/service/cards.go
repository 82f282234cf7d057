package service

import (
	"context"

	"CardPulse/internal/domain/models"
)

// PriceProvider is one tier of the best-price chain. ok=false means "no result".
type PriceProvider interface {
	Name() string
	Price(ctx context.Context, name string) (value float64, ok bool, err error)
}

// RemoteCatalog is a remote card database queried on local catalog misses.
type RemoteCatalog interface {
	// SyncCard returns models.ErrCardNotFound when nothing matches.
	SyncCard(ctx context.Context, name string) (*models.CardRecord, error)
	Search(ctx context.Context, query string, limit int) ([]models.CardRecord, error)
}

// Narrator writes commentary for a card summary.
type Narrator interface {
	Generate(ctx context.Context, s models.Summary) (models.Narrative, error)
}

// MetricsSource supplies placeholder market metrics for a card.
type MetricsSource interface {
	MetricsFor(name string) models.MarketMetrics
}
