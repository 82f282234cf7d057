package main

import (
	"fmt"
	"io"
	"strings"

	"CardPulse/internal/domain/models"

	"github.com/charmbracelet/glamour"
)

const historyRows = 7

func render(w io.Writer, md string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func cardMarkdown(c *models.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	if c.SetName != "" {
		fmt.Fprintf(&b, "_%s_", c.SetName)
		if c.IsPremium {
			b.WriteString(" · **mythic**")
		}
		b.WriteString("\n\n")
	}

	b.WriteString("| Price | RSI | Signal | Change | Volume | Volatility | AI score |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| $%.2f | %d | %s | %+.2f%% | %s | %s | %.1f |\n\n",
		c.Price, c.RSI, strings.ToUpper(string(c.Recommendation)), c.Change,
		c.Volume, c.Volatility, c.AIScore)

	pts := c.PricesHistory
	if len(pts) > historyRows {
		pts = pts[len(pts)-historyRows:]
	}
	b.WriteString("## Recent prices\n\n| Date | Price |\n|---|---|\n")
	for _, p := range pts {
		fmt.Fprintf(&b, "| %s | $%.2f |\n", p.Date, p.Price)
	}
	fmt.Fprintf(&b, "\n_source: %s_\n", c.Origin)
	return b.String()
}

func narrativeMarkdown(c *models.Card, n models.Narrative) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	for _, line := range strings.Split(n.Text, "\n") {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	fmt.Fprintf(&b, "\n_narrative: %s_\n", n.Source)
	return b.String()
}
