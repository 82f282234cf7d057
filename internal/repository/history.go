package repository

import (
	"context"
	"math"
	"strconv"
	"strings"

	"CardPulse/internal/domain/models"
	drepo "CardPulse/internal/domain/repository"
	applogger "CardPulse/pkg/logger"
	"CardPulse/pkg/util"
)

// History reads {"<name> - <edition>": [{"fecha": ..., "precio": ...}]} documents.
type History struct {
	path string
	log  *applogger.Logger
	doc  lazy[keyed]
}

var _ drepo.HistoryStore = (*History)(nil)

// NewHistory creates a history store reading path on first use.
func NewHistory(path string, l *applogger.Logger) *History {
	if l == nil {
		l = applogger.Nop()
	}
	return &History{path: path, log: l.Component("history")}
}

// Load returns up to the last HistoryWindow points for the series whose key
// fuzzily matches name. No match is an empty history.
func (h *History) Load(_ context.Context, name string) models.PriceHistory {
	doc := h.doc.get(h.load, h.log, h.path)

	i := util.BestMatch(doc.keys, name, util.MatchEither)
	if i < 0 {
		return nil
	}

	records := doc.values[i].Array()
	if len(records) > models.HistoryWindow {
		records = records[len(records)-models.HistoryWindow:]
	}

	out := make(models.PriceHistory, 0, len(records))
	for _, r := range records {
		price, ok := parsePrice(r.Get("precio").String())
		if !ok {
			continue
		}
		out = append(out, models.PricePoint{
			Date:  util.CalendarDay(r.Get("fecha").String()),
			Price: price,
		})
	}
	return out
}

// Reset drops the loaded document.
func (h *History) Reset() {
	h.doc.reset()
}

func (h *History) load() (keyed, error) {
	doc, err := readDocument(h.path)
	if err != nil {
		return keyed{}, err
	}
	k := keyedObject(doc)
	h.log.Info("history loaded", applogger.Int("series", len(k.keys)), applogger.String("path", h.path))
	return k, nil
}

// parsePrice accepts finite, non-negative decimal text.
func parsePrice(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}
