package repository

import (
	"context"
	"fmt"
	"strings"

	"CardPulse/internal/domain/models"
	drepo "CardPulse/internal/domain/repository"
	applogger "CardPulse/pkg/logger"
	"CardPulse/pkg/util"

	"github.com/tidwall/gjson"
)

// Catalog is the local card catalog backed by a {"cards": [...]} JSON file.
type Catalog struct {
	path  string
	log   *applogger.Logger
	cards lazy[[]models.CardRecord]
}

var _ drepo.CatalogStore = (*Catalog)(nil)

// NewCatalog creates a catalog reading path on first use.
func NewCatalog(path string, l *applogger.Logger) *Catalog {
	if l == nil {
		l = applogger.Nop()
	}
	return &Catalog{path: path, log: l.Component("catalog")}
}

// Find returns the best case-insensitive substring match for name.
func (c *Catalog) Find(_ context.Context, name string) (*models.CardRecord, bool) {
	return best(c.all(), name)
}

// FindByNameAndSet is Find restricted to cards whose set name contains set.
func (c *Catalog) FindByNameAndSet(_ context.Context, name, set string) (*models.CardRecord, bool) {
	var inSet []models.CardRecord
	for _, r := range c.all() {
		if util.ContainsFold(r.SetName, set) {
			inSet = append(inSet, r)
		}
	}
	return best(inSet, name)
}

// Search returns every card whose name contains query, in catalog order.
// limit <= 0 means no limit.
func (c *Catalog) Search(_ context.Context, query string, limit int) []models.CardRecord {
	var out []models.CardRecord
	for _, r := range c.all() {
		if limit > 0 && len(out) >= limit {
			break
		}
		if util.Matches(r.Name, query, util.MatchContains) {
			out = append(out, r)
		}
	}
	return out
}

// Reset drops the loaded catalog; the next lookup reloads the file.
func (c *Catalog) Reset() {
	c.cards.reset()
}

// Len reports the number of loaded cards, loading the file if needed.
func (c *Catalog) Len() int {
	return len(c.all())
}

func (c *Catalog) all() []models.CardRecord {
	return c.cards.get(c.load, c.log, c.path)
}

func (c *Catalog) load() ([]models.CardRecord, error) {
	doc, err := readDocument(c.path)
	if err != nil {
		return nil, err
	}
	cards := doc.Get("cards")
	if !cards.IsArray() {
		return nil, fmt.Errorf("%s: missing cards array", c.path)
	}

	out := make([]models.CardRecord, 0, len(cards.Array()))
	for _, v := range cards.Array() {
		name := strings.TrimSpace(v.Get("name").String())
		if name == "" {
			continue
		}
		out = append(out, models.CardRecord{
			Name:       name,
			SetCode:    v.Get("set").String(),
			SetName:    v.Get("set_name").String(),
			PriceUSD:   optionalPrice(v.Get("price_usd")),
			ImageURL:   strings.TrimSpace(v.Get("image_url").String()),
			Rarity:     v.Get("rarity").String(),
			OracleText: v.Get("oracle_text").String(),
			Origin:     models.OriginCatalog,
		})
	}
	c.log.Info("catalog loaded", applogger.Int("cards", len(out)), applogger.String("path", c.path))
	return out, nil
}

func best(cards []models.CardRecord, name string) (*models.CardRecord, bool) {
	names := make([]string, len(cards))
	for i, r := range cards {
		names[i] = r.Name
	}
	i := util.BestMatch(names, name, util.MatchContains)
	if i < 0 {
		return nil, false
	}
	rec := cards[i]
	return &rec, true
}

// optionalPrice accepts a JSON number or numeric string; anything else is absent.
func optionalPrice(v gjson.Result) *float64 {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Float()
	case gjson.String:
		p, ok := parsePrice(v.String())
		if !ok {
			return nil
		}
		f = p
	default:
		return nil
	}
	return &f
}
