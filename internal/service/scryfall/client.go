package scryfall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"CardPulse/internal/domain/models"
	xhttp "CardPulse/pkg/http"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL = "https://api.scryfall.com"
	// searchTake is how many remote search hits are considered before filtering.
	searchTake = 10
)

// Option configures Client.
type Option func(*Client)

// Client is a read-only Scryfall card API client.
type Client struct {
	baseURL  string
	eurToUSD decimal.Decimal
	http     *xhttp.Client
	timeout  time.Duration
}

// New creates a Scryfall client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		eurToUSD: decimal.RequireFromString("1.1"),
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(c.timeout))
	}
	return c
}

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithEURToUSD sets the EUR to USD conversion rate applied to Cardmarket prices.
func WithEURToUSD(rate float64) Option {
	return func(c *Client) { c.eurToUSD = decimal.NewFromFloat(rate) }
}

// WithHTTPClient injects the transport client.
func WithHTTPClient(hc *xhttp.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NamedFuzzy fetches the raw card document for the best fuzzy name match.
// A 404 maps to models.ErrCardNotFound; any other failure wraps
// models.ErrUpstreamUnavailable.
func (c *Client) NamedFuzzy(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/cards/named",
		QueryParams: map[string][]string{"fuzzy": {name}},
	}, &body)
	if err != nil {
		return nil, classify(err, name)
	}
	return body, nil
}

// SyncCard builds a catalog-compatible record from the remote match for name.
func (c *Client) SyncCard(ctx context.Context, name string) (*models.CardRecord, error) {
	body, err := c.NamedFuzzy(ctx, name)
	if err != nil {
		return nil, err
	}
	doc := gjson.ParseBytes(body)
	if !doc.Get("name").Exists() {
		return nil, fmt.Errorf("scryfall %q: %w", name, models.ErrCardNotFound)
	}
	rec := recordFrom(doc)
	return &rec, nil
}

// Name identifies this provider in logs and metrics.
func (c *Client) Name() string { return "scryfall" }

// Price returns the remote USD price for name. The Cardmarket EUR quote is
// preferred and converted; the USD quote is used otherwise. A card without prices, or no
// match at all, is ok=false with a nil error.
func (c *Client) Price(ctx context.Context, name string) (float64, bool, error) {
	body, err := c.NamedFuzzy(ctx, name)
	if errors.Is(err, models.ErrCardNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	prices := gjson.GetBytes(body, "prices")

	// Unrounded, so the chain's acceptance threshold sees the converted value.
	if eur, ok := parseDecimal(prices.Get("eur_mkm").String()); ok {
		v, _ := eur.Mul(c.eurToUSD).Float64()
		return v, true, nil
	}
	if usd, ok := parseDecimal(prices.Get("usd").String()); ok {
		v, _ := usd.Float64()
		return v, true, nil
	}
	return 0, false, nil
}

// Search runs a remote card search and returns priced hits, at most limit.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.CardRecord, error) {
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/cards/search",
		QueryParams: map[string][]string{
			"q":      {query},
			"unique": {"prints"},
		},
	}, &body)
	if err != nil {
		// Scryfall answers 404 for a search without hits.
		if err = classify(err, query); errors.Is(err, models.ErrCardNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var out []models.CardRecord
	for i, doc := range gjson.GetBytes(body, "data").Array() {
		if i >= searchTake || (limit > 0 && len(out) >= limit) {
			break
		}
		rec := recordFrom(doc)
		if rec.PriceUSD == nil || *rec.PriceUSD <= 0 {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func recordFrom(doc gjson.Result) models.CardRecord {
	rec := models.CardRecord{
		Name:       doc.Get("name").String(),
		SetCode:    doc.Get("set").String(),
		SetName:    doc.Get("set_name").String(),
		Rarity:     doc.Get("rarity").String(),
		OracleText: doc.Get("oracle_text").String(),
		ImageURL:   doc.Get("image_uris.normal").String(),
		Origin:     models.OriginRemote,
	}
	if rec.ImageURL == "" {
		rec.ImageURL = doc.Get("card_faces.0.image_uris.normal").String()
	}
	if usd, ok := parseDecimal(doc.Get("prices.usd").String()); ok {
		v, _ := usd.Float64()
		rec.PriceUSD = &v
	}
	return rec
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

func classify(err error, name string) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return fmt.Errorf("scryfall %q: %w", name, models.ErrCardNotFound)
	}
	return fmt.Errorf("scryfall %q: %w: %w", name, models.ErrUpstreamUnavailable, err)
}
