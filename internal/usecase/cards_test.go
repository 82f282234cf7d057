package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"CardPulse/internal/domain/models"
	domsvc "CardPulse/internal/domain/service"
)

func ptr(v float64) *float64 { return &v }

type fakeCatalog struct {
	cards  []models.CardRecord
	resets int
}

func (f *fakeCatalog) Find(_ context.Context, name string) (*models.CardRecord, bool) {
	for _, c := range f.cards {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			c := c
			return &c, true
		}
	}
	return nil, false
}

func (f *fakeCatalog) FindByNameAndSet(ctx context.Context, name, _ string) (*models.CardRecord, bool) {
	return f.Find(ctx, name)
}

func (f *fakeCatalog) Search(_ context.Context, q string, _ int) []models.CardRecord {
	var out []models.CardRecord
	for _, c := range f.cards {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeCatalog) Reset() { f.resets++ }

type fakeHistory struct {
	series map[string]models.PriceHistory
}

func (f *fakeHistory) Load(_ context.Context, name string) models.PriceHistory {
	return f.series[name]
}

func (f *fakeHistory) Reset() {}

type fakeRemote struct {
	mu     sync.Mutex
	cards  map[string]models.CardRecord
	err    error
	search []models.CardRecord
	synced []string
}

func (f *fakeRemote) SyncCard(_ context.Context, name string) (*models.CardRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.synced = append(f.synced, name)
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.cards[name]; ok {
		c.Origin = models.OriginRemote
		return &c, nil
	}
	return nil, fmt.Errorf("remote %q: %w", name, models.ErrCardNotFound)
}

func (f *fakeRemote) Search(context.Context, string, int) ([]models.CardRecord, error) {
	return f.search, f.err
}

type fakePrices struct {
	mu    sync.Mutex
	calls int
}

func (f *fakePrices) BestPrice(_ context.Context, name string) models.PriceResult {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return models.PriceResult{Name: name, Value: 7, Source: models.SourceFallback}
}

func (f *fakePrices) Reset(context.Context) error { return nil }

type fakeNarrator struct{}

func (fakeNarrator) Generate(ctx context.Context, s models.Summary) (models.Narrative, error) {
	if err := ctx.Err(); err != nil {
		return models.Narrative{}, err
	}
	return models.Narrative{Text: "ok " + s.Name, Source: "template"}, nil
}

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newService(cat *fakeCatalog, hist *fakeHistory, remote *fakeRemote, prices *fakePrices, opts ...CardServiceOption) *CardService {
	opts = append([]CardServiceOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	var r domsvc.RemoteCatalog
	if remote != nil {
		r = remote
	}
	return NewCardService(cat, hist, r, prices, fakeNarrator{}, opts...)
}

func TestFetchCardFromCatalog(t *testing.T) {
	cat := &fakeCatalog{cards: []models.CardRecord{
		{Name: "Black Lotus", SetName: "Limited Edition Alpha", PriceUSD: ptr(100), Rarity: "rare", ImageURL: "  ", Origin: models.OriginCatalog},
	}}
	hist := &fakeHistory{series: map[string]models.PriceHistory{
		"Black Lotus": {
			{Date: "2024-01-01", Price: 100},
			{Date: "2024-01-02", Price: 90},
			{Date: "2024-01-03", Price: 95},
			{Date: "2024-01-04", Price: 80},
		},
	}}
	prices := &fakePrices{}
	s := newService(cat, hist, nil, prices)

	card, err := s.FetchCard(context.Background(), "lotus")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if card.Price != 100 || prices.calls != 0 {
		t.Fatalf("catalog price should be used: %+v (calls %d)", card.Price, prices.calls)
	}
	if card.RSI != 29 || card.Recommendation != models.RecommendBuy || card.Change != -20 {
		t.Fatalf("signals = %d %s %v", card.RSI, card.Recommendation, card.Change)
	}
	if card.ImageURL != models.PlaceholderImage || card.Origin != models.OriginCatalog {
		t.Fatalf("unexpected card %+v", card)
	}
	if card.Volume == "" || card.Volatility == "" {
		t.Fatalf("placeholder metrics missing")
	}
}

func TestFetchCardSynthesizesHistory(t *testing.T) {
	cat := &fakeCatalog{cards: []models.CardRecord{{Name: "Sol Ring", Rarity: "mythic"}}}
	prices := &fakePrices{}
	s := newService(cat, &fakeHistory{}, nil, prices)

	card, err := s.FetchCard(context.Background(), "sol ring")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if card.Price != 7 || prices.calls != 1 {
		t.Fatalf("missing catalog price should resolve through the chain, got %v", card.Price)
	}
	if len(card.PricesHistory) != 1 || card.PricesHistory[0] != (models.PricePoint{Date: "2025-03-14", Price: 7}) {
		t.Fatalf("history = %+v", card.PricesHistory)
	}
	if card.RSI != 50 || card.Recommendation != models.RecommendHold || card.Change != 0 {
		t.Fatalf("single point signals = %d %s %v", card.RSI, card.Recommendation, card.Change)
	}
	if !card.IsPremium {
		t.Fatalf("mythic should be premium")
	}
}

func TestFetchCardRemoteSync(t *testing.T) {
	remote := &fakeRemote{cards: map[string]models.CardRecord{
		"Tarmogoyf": {Name: "Tarmogoyf", SetName: "Future Sight", PriceUSD: ptr(30)},
	}}
	s := newService(&fakeCatalog{}, &fakeHistory{}, remote, &fakePrices{})

	card, err := s.FetchCard(context.Background(), "Tarmogoyf")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if card.Origin != models.OriginRemote || card.Price != 30 {
		t.Fatalf("unexpected %+v", card)
	}

	_, err = s.FetchCard(context.Background(), "Nonexistent")
	if !errors.Is(err, models.ErrCardNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestFetchCardRemoteFailureIsNotFound(t *testing.T) {
	remote := &fakeRemote{err: fmt.Errorf("dial: %w", models.ErrUpstreamUnavailable)}
	s := newService(&fakeCatalog{}, &fakeHistory{}, remote, &fakePrices{})

	_, err := s.FetchCard(context.Background(), "Tarmogoyf")
	if !errors.Is(err, models.ErrCardNotFound) || !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Fatalf("want not found wrapping upstream, got %v", err)
	}
}

func TestFetchCardEmptyName(t *testing.T) {
	s := newService(&fakeCatalog{}, &fakeHistory{}, nil, &fakePrices{})
	if _, err := s.FetchCard(context.Background(), "   "); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("want invalid input, got %v", err)
	}
}

func TestSearchFeatured(t *testing.T) {
	cat := &fakeCatalog{cards: []models.CardRecord{
		{Name: "Mox Sapphire", PriceUSD: ptr(9000)},
		{Name: "Mox Emerald", PriceUSD: ptr(8000)},
	}}
	remote := &fakeRemote{}
	s := newService(cat, &fakeHistory{}, remote, &fakePrices{},
		WithFeatured([]string{"Black Lotus", "Mox Sapphire", "Mox Ruby", "Mox Emerald"}, 2))

	res, err := s.SearchFeatured(context.Background(), "MOX")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.HasMore {
		t.Fatalf("hasMore should be false")
	}
	// Mox Ruby is neither local nor remote and is dropped.
	if len(res.Cards) != 2 || res.Cards[0].Name != "Mox Sapphire" || res.Cards[1].Name != "Mox Emerald" {
		t.Fatalf("unexpected cards %+v", res.Cards)
	}

	res, _ = s.SearchFeatured(context.Background(), "  ")
	if len(res.Cards) != 0 {
		t.Fatalf("blank query should return nothing")
	}
}

func TestFetchManyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	remote := &fakeRemote{err: context.Canceled}
	s := newService(&fakeCatalog{}, &fakeHistory{}, remote, &fakePrices{})

	if _, err := s.FetchMany(ctx, []string{"a", "b"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want canceled, got %v", err)
	}
}

func TestSearchAll(t *testing.T) {
	cat := &fakeCatalog{cards: []models.CardRecord{
		{Name: "Lightning Bolt", SetName: "Alpha"},
		{Name: "Lightning Helix", SetName: "Ravnica"},
	}}
	remote := &fakeRemote{search: []models.CardRecord{
		{Name: "Lightning Bolt", SetName: "M10"},
		{Name: "Lightning Greaves", SetName: "Shards"},
	}}
	s := newService(cat, &fakeHistory{}, remote, &fakePrices{})

	got := s.SearchAll(context.Background(), "lightning")
	if len(got) != 3 {
		t.Fatalf("want 3 unique cards, got %+v", got)
	}
	if got[0].SetName != "Alpha" {
		t.Fatalf("local record should win duplicates: %+v", got[0])
	}
}

func TestSearchAllCapsResults(t *testing.T) {
	var many []models.CardRecord
	for i := 0; i < 30; i++ {
		many = append(many, models.CardRecord{Name: fmt.Sprintf("Goblin %02d", i)})
	}
	s := newService(&fakeCatalog{cards: many}, &fakeHistory{}, &fakeRemote{}, &fakePrices{})
	if got := s.SearchAll(context.Background(), "goblin"); len(got) != 20 {
		t.Fatalf("want 20, got %d", len(got))
	}
}

func TestResetCaches(t *testing.T) {
	cat := &fakeCatalog{}
	s := newService(cat, &fakeHistory{}, nil, &fakePrices{})
	if err := s.ResetCaches(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if cat.resets != 1 {
		t.Fatalf("catalog not reset")
	}
}

type capturePublisher struct {
	snaps []FeaturedSnapshot
}

func (c *capturePublisher) Publish(s FeaturedSnapshot) { c.snaps = append(c.snaps, s) }

func TestFeaturedRefresher(t *testing.T) {
	cat := &fakeCatalog{cards: []models.CardRecord{{Name: "Sol Ring", PriceUSD: ptr(2)}}}
	s := newService(cat, &fakeHistory{}, nil, &fakePrices{}, WithFeatured([]string{"Sol Ring", "Mana Crypt"}, 2))
	r := NewFeaturedRefresher(s, nil, nil)
	pub := &capturePublisher{}
	r.SetPublisher(pub)

	if _, ok := r.Snapshot(); ok {
		t.Fatalf("snapshot before first refresh")
	}
	snap, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(snap.Cards) != 1 || snap.Cards[0].Name != "Sol Ring" {
		t.Fatalf("snapshot = %+v", snap.Cards)
	}
	if got, ok := r.Snapshot(); !ok || len(got.Cards) != 1 {
		t.Fatalf("snapshot not stored")
	}
	if len(pub.snaps) != 1 {
		t.Fatalf("snapshot not published")
	}
}
