package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"CardPulse/internal/domain/models"
	domrepo "CardPulse/internal/domain/repository"
	domsvc "CardPulse/internal/domain/service"
	"CardPulse/internal/services/signals"
	applogger "CardPulse/pkg/logger"
	"CardPulse/pkg/util"

	"golang.org/x/sync/errgroup"
)

const (
	// searchTopUpBelow triggers a remote search when the catalog has fewer hits.
	searchTopUpBelow = 5
	searchMaxResults = 20
	remoteSearchTake = 10
)

// PriceResolver resolves best prices and can drop its cache.
type PriceResolver interface {
	BestPrice(ctx context.Context, name string) models.PriceResult
	Reset(ctx context.Context) error
}

// CardService assembles cards with signals and serves the dashboard operations.
type CardService struct {
	catalog     domrepo.CatalogStore
	history     domrepo.HistoryStore
	remote      domsvc.RemoteCatalog
	prices      PriceResolver
	narrator    domsvc.Narrator
	placeholder domsvc.MetricsSource
	featured    []string
	concurrency int
	now         func() time.Time
	log         *applogger.Logger
	metrics     domrepo.Metrics
}

// CardServiceOption configures CardService.
type CardServiceOption func(*CardService)

// NewCardService wires the card use case. remote may be nil to disable remote sync.
func NewCardService(
	catalog domrepo.CatalogStore,
	history domrepo.HistoryStore,
	remote domsvc.RemoteCatalog,
	prices PriceResolver,
	narrator domsvc.Narrator,
	opts ...CardServiceOption,
) *CardService {
	s := &CardService{
		catalog:     catalog,
		history:     history,
		remote:      remote,
		prices:      prices,
		narrator:    narrator,
		placeholder: signals.HashMetrics{},
		concurrency: 4,
		now:         time.Now,
		log:         applogger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithFeatured sets the featured card names and the fan-out limit.
func WithFeatured(names []string, concurrency int) CardServiceOption {
	return func(s *CardService) {
		s.featured = names
		if concurrency > 0 {
			s.concurrency = concurrency
		}
	}
}

// WithMetricsSource replaces the placeholder market metrics source.
func WithMetricsSource(m domsvc.MetricsSource) CardServiceOption {
	return func(s *CardService) { s.placeholder = m }
}

// WithClock overrides the clock used to date synthetic history points.
func WithClock(now func() time.Time) CardServiceOption {
	return func(s *CardService) { s.now = now }
}

func WithLogger(l *applogger.Logger) CardServiceOption {
	return func(s *CardService) { s.log = l.Component("cards") }
}

func WithMetrics(m domrepo.Metrics) CardServiceOption {
	return func(s *CardService) { s.metrics = m }
}

// Featured returns the configured featured card names.
func (s *CardService) Featured() []string {
	return s.featured
}

// FetchCard looks name up in the catalog, falling back to a remote sync, and
// assembles the card with its history and signals.
func (s *CardService) FetchCard(ctx context.Context, name string) (*models.Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: card name is empty", models.ErrInvalidInput)
	}

	rec, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, rec), nil
}

func (s *CardService) lookup(ctx context.Context, name string) (*models.CardRecord, error) {
	if rec, ok := s.catalog.Find(ctx, name); ok {
		s.recordLookup(models.OriginCatalog)
		return rec, nil
	}
	if s.remote == nil {
		s.recordLookup("miss")
		return nil, fmt.Errorf("card %q: %w", name, models.ErrCardNotFound)
	}

	rec, err := s.remote.SyncCard(ctx, name)
	switch {
	case err == nil:
		s.recordLookup(models.OriginRemote)
		return rec, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, models.ErrCardNotFound):
		s.recordLookup("miss")
		return nil, err
	default:
		s.log.Warn("remote sync failed", applogger.String("card", name), applogger.Error(err))
		if s.metrics != nil {
			s.metrics.RecordProviderError("remote_sync")
		}
		s.recordLookup("miss")
		return nil, fmt.Errorf("card %q: %w: %w", name, models.ErrCardNotFound, err)
	}
}

func (s *CardService) assemble(ctx context.Context, rec *models.CardRecord) *models.Card {
	price := s.basePrice(ctx, rec)

	history := s.history.Load(ctx, rec.Name)
	if len(history) == 0 {
		history = models.PriceHistory{{Date: util.Today(s.now()), Price: price}}
	}
	sig := signals.Compute(history.Prices())

	image := strings.TrimSpace(rec.ImageURL)
	if image == "" {
		image = models.PlaceholderImage
	}

	return &models.Card{
		Name:           rec.Name,
		SetName:        rec.SetName,
		Set:            rec.SetName,
		PriceUSD:       rec.PriceUSD,
		Price:          price,
		ImageURL:       image,
		Rarity:         rec.Rarity,
		Origin:         rec.Origin,
		PricesHistory:  history,
		RSI:            int(math.Round(sig.RSI)),
		Recommendation: sig.Recommendation,
		Change:         sig.ChangePct,
		IsPremium:      rec.IsPremium(),
		MarketMetrics:  s.placeholder.MetricsFor(rec.Name),
	}
}

// basePrice prefers the record's own positive price and resolves one otherwise.
func (s *CardService) basePrice(ctx context.Context, rec *models.CardRecord) float64 {
	if rec.PriceUSD != nil && *rec.PriceUSD > 0 && !math.IsInf(*rec.PriceUSD, 0) {
		return *rec.PriceUSD
	}
	return s.prices.BestPrice(ctx, rec.Name).Value
}

// SearchFeatured fetches every featured card whose name contains query.
// Cards that fail to load are left out.
func (s *CardService) SearchFeatured(ctx context.Context, query string) (*models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return &models.SearchResult{Cards: []*models.Card{}}, nil
	}
	var names []string
	for _, n := range s.featured {
		if util.Matches(n, query, util.MatchContains) {
			names = append(names, n)
		}
	}
	cards, err := s.FetchMany(ctx, names)
	if err != nil {
		return nil, err
	}
	return &models.SearchResult{Cards: cards, HasMore: false}, nil
}

// FetchMany fetches names concurrently, keeping input order and dropping
// failures. Only cancellation of ctx is returned as an error.
func (s *CardService) FetchMany(ctx context.Context, names []string) ([]*models.Card, error) {
	slots := make([]*models.Card, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, name := range names {
		g.Go(func() error {
			card, err := s.FetchCard(gctx, name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.Debug("featured card skipped", applogger.String("card", name), applogger.Error(err))
				return nil
			}
			slots[i] = card
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cards := make([]*models.Card, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// SearchAll searches the catalog and tops the result up from the remote
// catalog when it has fewer than five hits. Names are de-duplicated and the
// result holds at most twenty cards.
func (s *CardService) SearchAll(ctx context.Context, query string) []models.CardRecord {
	if strings.TrimSpace(query) == "" {
		return []models.CardRecord{}
	}
	results := s.catalog.Search(ctx, query, 0)
	if len(results) < searchTopUpBelow && s.remote != nil {
		extra, err := s.remote.Search(ctx, query, remoteSearchTake)
		if err != nil {
			s.log.Warn("remote search failed", applogger.String("query", query), applogger.Error(err))
			if s.metrics != nil {
				s.metrics.RecordProviderError("remote_search")
			}
		}
		results = append(results, extra...)
	}

	seen := make(map[string]struct{}, len(results))
	out := make([]models.CardRecord, 0, min(len(results), searchMaxResults))
	for _, r := range results {
		key := util.NormalizeKey(r.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
		if len(out) == searchMaxResults {
			break
		}
	}
	return out
}

// BestPrice resolves the best available price for name.
func (s *CardService) BestPrice(ctx context.Context, name string) (models.PriceResult, error) {
	if strings.TrimSpace(name) == "" {
		return models.PriceResult{}, fmt.Errorf("%w: card name is empty", models.ErrInvalidInput)
	}
	return s.prices.BestPrice(ctx, name), nil
}

// Analyze writes the narrative for a card summary.
func (s *CardService) Analyze(ctx context.Context, summary models.Summary) (models.Narrative, error) {
	return s.narrator.Generate(ctx, summary)
}

// ResetCaches drops the price cache, the catalog and the loaded history.
func (s *CardService) ResetCaches(ctx context.Context) error {
	s.catalog.Reset()
	s.history.Reset()
	return s.prices.Reset(ctx)
}

func (s *CardService) recordLookup(origin string) {
	if s.metrics != nil {
		s.metrics.RecordLookup(origin)
	}
}
