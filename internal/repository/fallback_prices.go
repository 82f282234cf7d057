package repository

import (
	"context"

	dservice "CardPulse/internal/domain/service"
	applogger "CardPulse/pkg/logger"
	"CardPulse/pkg/util"
)

// FallbackPrices is the static {"<name>": price} table used when the remote
// provider has no usable price.
type FallbackPrices struct {
	path string
	log  *applogger.Logger
	doc  lazy[keyed]
}

var _ dservice.PriceProvider = (*FallbackPrices)(nil)

func NewFallbackPrices(path string, l *applogger.Logger) *FallbackPrices {
	if l == nil {
		l = applogger.Nop()
	}
	return &FallbackPrices{path: path, log: l.Component("fallback_prices")}
}

func (f *FallbackPrices) Name() string { return "fallback" }

// Price looks name up with fuzzy matching in either direction.
func (f *FallbackPrices) Price(_ context.Context, name string) (float64, bool, error) {
	doc := f.doc.get(f.load, f.log, f.path)

	i := util.BestMatch(doc.keys, name, util.MatchEither)
	if i < 0 {
		return 0, false, nil
	}
	v, ok := parsePrice(doc.values[i].String())
	return v, ok, nil
}

func (f *FallbackPrices) Reset() {
	f.doc.reset()
}

func (f *FallbackPrices) load() (keyed, error) {
	doc, err := readDocument(f.path)
	if err != nil {
		return keyed{}, err
	}
	return keyedObject(doc), nil
}
