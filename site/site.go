// Package site renders the standalone replay page from a reconstructed
// backtest. The page is a single HTML file with the three sequences embedded
// as JSON and a chart.js scrub/playback script; it consumes the pipeline's
// output and performs no reconciliation of its own.
package site

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/rustyeddy/tradereplay/portfolio"
	"github.com/rustyeddy/tradereplay/stats"
	"github.com/rustyeddy/tradereplay/trades"
)

// Page is everything the replay template needs.
type Page struct {
	DataLabel string
	Points    []portfolio.Point
	Events    []trades.Event
	Rounds    []trades.Completed
	Summary   stats.Summary
}

// view is the flattened, display-ready form handed to the template.
type view struct {
	DataLabel   string
	FinalEquity string
	NetReturn   string
	HodlEquity  string
	HodlReturn  string
	Alpha       string
	MaxDrawdown string
	WinRate     string
	TotalTrades string
	Runtime     string
	MaxFrame    int

	PortfolioJSON template.JS
	TradeJSON     template.JS
	CompletedJSON template.JS
}

var pageTemplate = template.Must(template.New("replay").Parse(replayHTML))

// Render writes the replay page for p to w.
func Render(w io.Writer, p Page) error {
	portfolioJSON, err := jsPayload(p.Points)
	if err != nil {
		return fmt.Errorf("site: encode portfolio points: %w", err)
	}
	tradeJSON, err := jsPayload(p.Events)
	if err != nil {
		return fmt.Errorf("site: encode trade events: %w", err)
	}
	completedJSON, err := jsPayload(p.Rounds)
	if err != nil {
		return fmt.Errorf("site: encode completed trades: %w", err)
	}

	maxFrame := len(p.Points) - 1
	if maxFrame < 0 {
		maxFrame = 0
	}

	s := p.Summary
	v := view{
		DataLabel:   p.DataLabel,
		FinalEquity: stats.Currency(s.EndEquity),
		NetReturn:   stats.Percent(s.NetReturnPct, true),
		HodlEquity:  stats.Currency(s.HodlEnd),
		HodlReturn:  stats.Percent(s.HodlReturnPct, true),
		Alpha:       stats.Percent(s.AlphaVsHodl, true),
		MaxDrawdown: maxDrawdownText(s.MaxDrawdownPct),
		WinRate:     stats.Percent(s.WinRatePct, false),
		TotalTrades: fmt.Sprintf("%d", s.TotalTrades),
		Runtime:     stats.Runtime(s.RuntimeHours),
		MaxFrame:    maxFrame,

		PortfolioJSON: portfolioJSON,
		TradeJSON:     tradeJSON,
		CompletedJSON: completedJSON,
	}

	return pageTemplate.Execute(w, v)
}

// WriteFile renders the page to path.
func WriteFile(path string, p Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Drawdown reads as damage, so it is displayed negative.
func maxDrawdownText(v *float64) string {
	if v == nil {
		return "—"
	}
	return "-" + stats.Percent(v, false)
}

func jsPayload(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		// nil slices still render as an empty list on the page
		data = []byte("[]")
	}
	return template.JS(data), nil
}
