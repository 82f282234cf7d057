package scryfall

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"CardPulse/internal/domain/models"
)

const lotusDoc = `{
  "object": "card",
  "name": "Black Lotus",
  "set": "lea",
  "set_name": "Limited Edition Alpha",
  "rarity": "rare",
  "oracle_text": "Add three mana of any one color.",
  "image_uris": {"normal": "https://img.example/lotus.jpg"},
  "prices": {"usd": "27500.00", "eur_mkm": "20000.00"}
}`

const splitDoc = `{
  "name": "Fire // Ice",
  "set": "mh2",
  "set_name": "Modern Horizons 2",
  "rarity": "uncommon",
  "card_faces": [{"image_uris": {"normal": "https://img.example/fire.jpg"}}],
  "prices": {"usd": "0.25", "eur": null}
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/cards/named", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("fuzzy") {
		case "lotus":
			_, _ = w.Write([]byte(lotusDoc))
		case "fire ice":
			_, _ = w.Write([]byte(splitDoc))
		case "cheap":
			_, _ = w.Write([]byte(`{"name":"Llanowar Elves","prices":{"eur_mkm":"0.455","usd":"0.30"}}`))
		case "eur only":
			_, _ = w.Write([]byte(`{"name":"Counterspell","prices":{"eur":"10.00","usd":"20.00"}}`))
		case "boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"object":"error","status":404}`))
		}
	})
	mux.HandleFunc("/cards/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("unique") != "prints" {
			t.Errorf("unique = %q", r.URL.Query().Get("unique"))
		}
		if r.URL.Query().Get("q") == "nothing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data": [` + lotusDoc + `,` + splitDoc + `,{"name":"Unpriced","prices":{}}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSyncCard(t *testing.T) {
	c := New(WithBaseURL(newTestServer(t).URL))

	rec, err := c.SyncCard(context.Background(), "lotus")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if rec.Name != "Black Lotus" || rec.SetName != "Limited Edition Alpha" || rec.Origin != models.OriginRemote {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.PriceUSD == nil || *rec.PriceUSD != 27500 {
		t.Fatalf("price = %v", rec.PriceUSD)
	}
	if rec.ImageURL != "https://img.example/lotus.jpg" {
		t.Fatalf("image = %q", rec.ImageURL)
	}

	split, err := c.SyncCard(context.Background(), "fire ice")
	if err != nil {
		t.Fatalf("sync split: %v", err)
	}
	if split.ImageURL != "https://img.example/fire.jpg" {
		t.Fatalf("face image not used: %q", split.ImageURL)
	}
}

func TestSyncCardErrors(t *testing.T) {
	c := New(WithBaseURL(newTestServer(t).URL))

	_, err := c.SyncCard(context.Background(), "no such card")
	if !errors.Is(err, models.ErrCardNotFound) {
		t.Fatalf("want not found, got %v", err)
	}

	_, err = c.SyncCard(context.Background(), "boom")
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Fatalf("want upstream unavailable, got %v", err)
	}
}

func TestPricePrefersConvertedEUR(t *testing.T) {
	c := New(WithBaseURL(newTestServer(t).URL), WithEURToUSD(1.1))

	v, ok, err := c.Price(context.Background(), "lotus")
	if err != nil || !ok {
		t.Fatalf("price: %v %v", ok, err)
	}
	if v != 22000 {
		t.Fatalf("got %v, want 22000", v)
	}

	v, ok, err = c.Price(context.Background(), "fire ice")
	if err != nil || !ok || v != 0.25 {
		t.Fatalf("usd fallback: %v %v %v", v, ok, err)
	}

	_, ok, err = c.Price(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("missing card should be a clean miss: %v %v", ok, err)
	}
}

func TestPriceIsNotRounded(t *testing.T) {
	c := New(WithBaseURL(newTestServer(t).URL), WithEURToUSD(1.1))

	// 0.455 x 1.1 must stay above a 0.5 acceptance threshold.
	v, ok, err := c.Price(context.Background(), "cheap")
	if err != nil || !ok || v != 0.5005 {
		t.Fatalf("got %v %v %v, want 0.5005", v, ok, err)
	}

	// Only the Cardmarket quote outranks USD.
	v, ok, err = c.Price(context.Background(), "eur only")
	if err != nil || !ok || v != 20 {
		t.Fatalf("got %v %v %v, want the usd quote 20", v, ok, err)
	}
}

func TestSearch(t *testing.T) {
	c := New(WithBaseURL(newTestServer(t).URL))

	recs, err := c.Search(context.Background(), "o", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 priced hits, got %d", len(recs))
	}

	recs, err = c.Search(context.Background(), "nothing", 0)
	if err != nil || len(recs) != 0 {
		t.Fatalf("empty search: %v %v", recs, err)
	}
}

func TestUnreachableIsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(WithBaseURL(url))
	_, _, err := c.Price(context.Background(), "lotus")
	if !errors.Is(err, models.ErrUpstreamUnavailable) {
		t.Fatalf("want upstream unavailable, got %v", err)
	}
}
