package repository

import (
	"context"

	"CardPulse/internal/domain/models"
)

// CatalogStore is the local card catalog.
type CatalogStore interface {
	Find(ctx context.Context, name string) (*models.CardRecord, bool)
	FindByNameAndSet(ctx context.Context, name, set string) (*models.CardRecord, bool)
	Search(ctx context.Context, query string, limit int) []models.CardRecord
	Reset()
}

// HistoryStore loads price history by fuzzy card name.
type HistoryStore interface {
	Load(ctx context.Context, name string) models.PriceHistory
	Reset()
}

// PriceCache holds resolved best prices keyed by normalized name.
type PriceCache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, value float64)
	Reset(ctx context.Context) error
}

type Metrics interface {
	RecordPriceSource(source string)
	RecordProviderError(provider string)
	RecordLookup(origin string)
	RecordNarrative(source string)
	RecordLastPrice(card string, price float64)
	RecordLatency(op string, seconds float64)
}
