package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const catalogDoc = `{"cards": [
  {"name": "Black Lotus", "set": "lea", "set_name": "Limited Edition Alpha", "price_usd": 27500, "image_url": " https://img/lotus.jpg ", "rarity": "rare"},
  {"name": "Lotus Petal", "set": "tmp", "set_name": "Tempest", "price_usd": "4.10", "rarity": "common"},
  {"name": "Black Lotus", "set": "leb", "set_name": "Limited Edition Beta", "price_usd": null, "rarity": "rare"},
  {"name": "Jace, the Mind Sculptor", "set": "wwk", "set_name": "Worldwake", "rarity": "mythic"},
  {"set_name": "nameless"}
]}`

func TestCatalogFind(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(writeFile(t, "db.json", catalogDoc), nil)

	rec, ok := c.Find(ctx, "lotus")
	if !ok {
		t.Fatalf("lotus not found")
	}
	// All three candidates are equally long, so catalog order decides.
	if rec.Name != "Black Lotus" || rec.SetName != "Limited Edition Alpha" {
		t.Fatalf("unexpected match %+v", rec)
	}
	if strings.TrimSpace(rec.ImageURL) != rec.ImageURL {
		t.Fatalf("image url not trimmed: %q", rec.ImageURL)
	}
	if rec.PriceUSD == nil || *rec.PriceUSD != 27500 {
		t.Fatalf("price = %v", rec.PriceUSD)
	}

	rec, ok = c.Find(ctx, "BLACK LOTUS")
	if !ok || rec.SetName != "Limited Edition Alpha" {
		t.Fatalf("exact match should pick first printing: %+v", rec)
	}

	if _, ok := c.Find(ctx, "mox"); ok {
		t.Fatalf("unexpected match for mox")
	}
	if c.Len() != 4 {
		t.Fatalf("nameless card should be skipped, len = %d", c.Len())
	}
}

func TestCatalogFindByNameAndSet(t *testing.T) {
	c := NewCatalog(writeFile(t, "db.json", catalogDoc), nil)

	rec, ok := c.FindByNameAndSet(context.Background(), "black lotus", "beta")
	if !ok {
		t.Fatalf("not found")
	}
	if rec.SetCode != "leb" || rec.PriceUSD != nil {
		t.Fatalf("unexpected %+v", rec)
	}
	if _, ok := c.FindByNameAndSet(context.Background(), "black lotus", "tempest"); ok {
		t.Fatalf("set filter ignored")
	}
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog(writeFile(t, "db.json", catalogDoc), nil)

	got := c.Search(context.Background(), "lotus", 0)
	if len(got) != 3 {
		t.Fatalf("want 3 hits, got %d", len(got))
	}
	if got[1].PriceUSD == nil || *got[1].PriceUSD != 4.10 {
		t.Fatalf("string price not parsed: %v", got[1].PriceUSD)
	}
	if got := c.Search(context.Background(), "lotus", 2); len(got) != 2 {
		t.Fatalf("limit ignored: %d", len(got))
	}
	if got := c.Search(context.Background(), " ", 0); len(got) != 0 {
		t.Fatalf("blank query matched %d", len(got))
	}
}

func TestCatalogLoadFailureIsEmpty(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "missing.json"), nil)
	if _, ok := c.Find(context.Background(), "lotus"); ok {
		t.Fatalf("missing file should behave as empty catalog")
	}

	bad := NewCatalog(writeFile(t, "db.json", `{"cards": [`), nil)
	if bad.Len() != 0 {
		t.Fatalf("broken file should behave as empty catalog")
	}
}

func TestCatalogReset(t *testing.T) {
	p := writeFile(t, "db.json", catalogDoc)
	c := NewCatalog(p, nil)
	if c.Len() != 4 {
		t.Fatalf("len = %d", c.Len())
	}

	if err := os.WriteFile(p, []byte(`{"cards": [{"name": "Sol Ring"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 4 {
		t.Fatalf("catalog reloaded without reset")
	}
	c.Reset()
	if c.Len() != 1 {
		t.Fatalf("reset did not reload, len = %d", c.Len())
	}
}

func historyDoc(n int) string {
	var b strings.Builder
	b.WriteString(`{"Black Lotus - lea": [`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"fecha": "2024-01-%02d 10:00:00", "precio": "%d.5"}`, i%28+1, 100+i)
	}
	b.WriteString(`], "Black Lotus - leb Collector": [{"fecha": "2024-02-01", "precio": "1"}],
	  "Sol Ring - c21": [
	    {"fecha": "2024-03-01T08:00:00Z", "precio": "2.00"},
	    {"fecha": "2024-03-02 09:00:00", "precio": "n/a"},
	    {"fecha": "2024-03-03", "precio": "-4"},
	    {"fecha": "2024-03-04", "precio": 2.5},
	    {"fecha": "2024-03-05", "precio": "NaN"}
	  ]}`)
	return b.String()
}

func TestHistoryLoadTrimsToWindow(t *testing.T) {
	h := NewHistory(writeFile(t, "h.json", historyDoc(40)), nil)

	got := h.Load(context.Background(), "black lotus")
	if len(got) != 30 {
		t.Fatalf("want 30 points, got %d", len(got))
	}
	if got[0].Price != 110.5 || got[29].Price != 139.5 {
		t.Fatalf("window not the last 30: first=%v last=%v", got[0].Price, got[29].Price)
	}
	if got[0].Date != "2024-01-11" {
		t.Fatalf("date not normalized: %q", got[0].Date)
	}
}

func TestHistoryLoadDropsMalformed(t *testing.T) {
	h := NewHistory(writeFile(t, "h.json", historyDoc(3)), nil)

	got := h.Load(context.Background(), "Sol Ring")
	if len(got) != 2 {
		t.Fatalf("want 2 valid points, got %+v", got)
	}
	if got[0].Date != "2024-03-01" || got[1].Price != 2.5 {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestHistoryLoadEitherDirection(t *testing.T) {
	h := NewHistory(writeFile(t, "h.json", historyDoc(3)), nil)

	// The query contains the key.
	got := h.Load(context.Background(), "sol ring - c21 (foil)")
	if len(got) != 2 {
		t.Fatalf("reverse containment failed: %+v", got)
	}
	if got := h.Load(context.Background(), "Mox Ruby"); len(got) != 0 {
		t.Fatalf("expected empty history, got %+v", got)
	}
}

func TestHistoryMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "none.json"), nil)
	if got := h.Load(context.Background(), "lotus"); len(got) != 0 {
		t.Fatalf("expected empty history")
	}
}

func TestFallbackPrices(t *testing.T) {
	ctx := context.Background()
	f := NewFallbackPrices(writeFile(t, "fb.json", `{"Black Lotus": 25000, "Sol Ring": 1.75, "Ponder": 0.3}`), nil)

	v, ok, err := f.Price(ctx, "black lotus (lea)")
	if err != nil || !ok || v != 25000 {
		t.Fatalf("got %v %v %v", v, ok, err)
	}
	v, ok, _ = f.Price(ctx, "ring")
	if !ok || v != 1.75 {
		t.Fatalf("substring lookup: %v %v", v, ok)
	}
	v, ok, _ = f.Price(ctx, "ponder")
	if !ok || v != 0.3 {
		t.Fatalf("table returns raw value, threshold is the chain's job: %v %v", v, ok)
	}
	if _, ok, _ := f.Price(ctx, "mox"); ok {
		t.Fatalf("unexpected hit")
	}
}
