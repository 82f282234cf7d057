package pricing

import (
	"context"
	"math"
	"time"

	"CardPulse/internal/domain/models"
	drepo "CardPulse/internal/domain/repository"
	dservice "CardPulse/internal/domain/service"
	applogger "CardPulse/pkg/logger"
	"CardPulse/pkg/util"
)

// Option configures Chain.
type Option func(*Chain)

type tier struct {
	provider dservice.PriceProvider
	source   models.PriceSource
}

// Chain resolves the best available price for a card name:
// cache, then the remote provider, then the local fallback table, then a constant.
type Chain struct {
	cache        drepo.PriceCache
	tiers        []tier
	minAccepted  float64
	defaultPrice float64
	log          *applogger.Logger
	metrics      drepo.Metrics
}

// NewChain builds a chain. Nil providers are skipped.
func NewChain(cache drepo.PriceCache, remote, fallback dservice.PriceProvider, opts ...Option) *Chain {
	c := &Chain{
		cache:        cache,
		minAccepted:  0.5,
		defaultPrice: 1,
		log:          applogger.Nop(),
	}
	if remote != nil {
		c.tiers = append(c.tiers, tier{remote, models.SourceRemote})
	}
	if fallback != nil {
		c.tiers = append(c.tiers, tier{fallback, models.SourceFallback})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithThresholds sets the minimum accepted price and the last-resort default.
func WithThresholds(minAccepted, defaultPrice float64) Option {
	return func(c *Chain) {
		c.minAccepted = minAccepted
		c.defaultPrice = defaultPrice
	}
}

// WithLogger sets the chain logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Chain) { c.log = l.Component("pricing") }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(c *Chain) { c.metrics = m }
}

// BestPrice never fails. Every resolved value is cached under the normalized name.
func (c *Chain) BestPrice(ctx context.Context, name string) models.PriceResult {
	start := time.Now()
	key := util.NormalizeKey(name)

	if v, ok := c.cache.Get(ctx, key); ok && c.acceptable(v) {
		return c.result(name, v, models.SourceCache, start)
	}

	for _, t := range c.tiers {
		v, ok, err := t.provider.Price(ctx, name)
		if err != nil {
			c.log.Warn("price provider failed",
				applogger.String("provider", t.provider.Name()),
				applogger.String("card", name),
				applogger.Error(err),
			)
			if c.metrics != nil {
				c.metrics.RecordProviderError(t.provider.Name())
			}
			continue
		}
		if ok && c.acceptable(v) {
			c.cache.Set(ctx, key, v)
			return c.result(name, v, t.source, start)
		}
	}

	c.cache.Set(ctx, key, c.defaultPrice)
	return c.result(name, c.defaultPrice, models.SourceDefault, start)
}

// Reset clears the price cache and reloads any resettable provider.
func (c *Chain) Reset(ctx context.Context) error {
	for _, t := range c.tiers {
		if r, ok := t.provider.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
	return c.cache.Reset(ctx)
}

func (c *Chain) acceptable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > c.minAccepted
}

func (c *Chain) result(name string, v float64, src models.PriceSource, start time.Time) models.PriceResult {
	if c.metrics != nil {
		c.metrics.RecordPriceSource(string(src))
		c.metrics.RecordLatency("best_price", time.Since(start).Seconds())
	}
	c.log.Debug("price resolved",
		applogger.String("card", name),
		applogger.String("source", string(src)),
		applogger.Float64("value", v),
	)
	return models.PriceResult{Name: name, Value: v, Source: src}
}
