package di

import (
	"context"
	"fmt"
	"time"

	domrepo "CardPulse/internal/domain/repository"
	"CardPulse/internal/handler/api"
	"CardPulse/internal/handler/ws"
	"CardPulse/internal/repository"
	"CardPulse/internal/service/narrative"
	"CardPulse/internal/service/pricing"
	"CardPulse/internal/service/ratelimit"
	"CardPulse/internal/service/scryfall"
	"CardPulse/internal/usecase"
	"CardPulse/pkg/cache"
	"CardPulse/pkg/config"
	xhttp "CardPulse/pkg/http"
	applogger "CardPulse/pkg/logger"
	"CardPulse/pkg/metrics"
	"CardPulse/pkg/server"
)

// ProvideLogger builds the root logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder. Disabled metrics
// yield a nil recorder, whose methods are no-ops.
func ProvideMetrics(cfg *config.Config) domrepo.Metrics {
	if !cfg.Metrics.Enabled {
		return (*metrics.Recorder)(nil)
	}
	return metrics.New()
}

// ProvideCache returns the memory cache, layered over Redis when configured.
// An unreachable Redis degrades to memory only.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	memOnly := func() cache.Service {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
	}
	if !cfg.Cache.Redis.Enabled {
		return memOnly()
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		l.Warn("redis unavailable, using memory cache", applogger.Error(err))
		return memOnly()
	}
	l.Info("price cache layered over redis",
		applogger.String("host", cfg.Cache.Redis.Host),
		applogger.Int("port", cfg.Cache.Redis.Port),
	)
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredPromoteTTL(time.Minute),
	)
}

// ProvideScryfall creates the remote catalog and price client.
func ProvideScryfall(cfg *config.Config) *scryfall.Client {
	return scryfall.New(
		scryfall.WithBaseURL(cfg.Scryfall.BaseURL),
		scryfall.WithTimeout(cfg.Scryfall.Timeout),
		scryfall.WithEURToUSD(cfg.Scryfall.EURToUSD),
	)
}

func ProvideCatalog(cfg *config.Config, l *applogger.Logger) *repository.Catalog {
	return repository.NewCatalog(cfg.Data.CatalogPath, l)
}

func ProvideHistory(cfg *config.Config, l *applogger.Logger) *repository.History {
	return repository.NewHistory(cfg.Data.HistoryPath, l)
}

func ProvideFallbackPrices(cfg *config.Config, l *applogger.Logger) *repository.FallbackPrices {
	return repository.NewFallbackPrices(cfg.Data.FallbackPricesPath, l)
}

// ProvidePriceChain builds cache -> scryfall -> fallback table -> default.
func ProvidePriceChain(
	cfg *config.Config,
	backend cache.Service,
	remote *scryfall.Client,
	fallback *repository.FallbackPrices,
	l *applogger.Logger,
	m domrepo.Metrics,
) *pricing.Chain {
	return pricing.NewChain(pricing.NewCache(backend, l), remote, fallback,
		pricing.WithThresholds(cfg.Pricing.MinAccepted, cfg.Pricing.DefaultPrice),
		pricing.WithLogger(l),
		pricing.WithMetrics(m),
	)
}

// ProvideNarrator selects the completion provider; without credentials every
// narrative comes from the template.
func ProvideNarrator(cfg *config.Config, l *applogger.Logger, m domrepo.Metrics) (*narrative.Generator, error) {
	provider, err := narrative.SelectProvider(context.Background(), cfg.Narrative.Provider, narrative.ProviderConfig{
		APIKey:      cfg.Narrative.APIKey,
		Model:       cfg.Narrative.Model,
		BaseURL:     cfg.Narrative.BaseURL,
		MaxTokens:   cfg.Narrative.MaxTokens,
		Temperature: cfg.Narrative.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("narrative provider: %w", err)
	}
	if provider == nil {
		l.Warn("no narrative credentials, template only", applogger.String("provider", cfg.Narrative.Provider))
	}
	return narrative.New(provider,
		narrative.WithTimeout(cfg.Narrative.Timeout),
		narrative.WithLogger(l),
		narrative.WithMetrics(m),
	), nil
}

// ProvideCardService creates the card use case.
func ProvideCardService(
	cfg *config.Config,
	catalog *repository.Catalog,
	history *repository.History,
	remote *scryfall.Client,
	chain *pricing.Chain,
	narrator *narrative.Generator,
	l *applogger.Logger,
	m domrepo.Metrics,
) *usecase.CardService {
	return usecase.NewCardService(catalog, history, remote, chain, narrator,
		usecase.WithFeatured(cfg.Featured.Names, cfg.Featured.Concurrency),
		usecase.WithLogger(l),
		usecase.WithMetrics(m),
	)
}

func ProvideFeaturedRefresher(cards *usecase.CardService, l *applogger.Logger, m domrepo.Metrics) *usecase.FeaturedRefresher {
	return usecase.NewFeaturedRefresher(cards, l, m)
}

// ProvideHub creates the featured websocket feed.
func ProvideHub(refresher *usecase.FeaturedRefresher, l *applogger.Logger) *ws.Hub {
	return ws.NewHub(refresher.Snapshot, l)
}

// ProvideRateLimiter creates the narrative endpoint limiter.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Narrative.RateLimit.Capacity, cfg.Narrative.RateLimit.PerSecond)
}

// ProvideHandlers lists every HTTP handler.
func ProvideHandlers(
	l *applogger.Logger,
	cards *usecase.CardService,
	rl *ratelimit.Limiter,
	hub *ws.Hub,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewCardsEchoHandler(l, cards),
		api.NewAnalyzeEchoHandler(l, cards, rl),
		hub,
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	refresher *usecase.FeaturedRefresher,
	hub *ws.Hub,
	backend cache.Service,
) *server.App {
	return server.New(cfg, l, srv, refresher, hub, backend)
}
