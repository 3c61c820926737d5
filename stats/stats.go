// Package stats computes summary performance metrics from a reconciled
// backtest: strategy return, benchmark return, drawdown, win rate and
// session duration. Every metric degrades independently; thin input never
// fails the computation, it just leaves that metric nil.
package stats

import (
	"fmt"

	"github.com/rustyeddy/tradereplay/portfolio"
	"github.com/rustyeddy/tradereplay/trades"
)

// Summary is the flat record of derived scalars consumed by the replay page
// and the CLI. Nil means the inputs were insufficient for that metric.
type Summary struct {
	StartEquity    *float64 `json:"start_equity"`
	EndEquity      *float64 `json:"end_equity"`
	NetReturnPct   *float64 `json:"net_return_pct"`
	HodlStart      *float64 `json:"hodl_start"`
	HodlEnd        *float64 `json:"hodl_end"`
	HodlReturnPct  *float64 `json:"hodl_return_pct"`
	AlphaVsHodl    *float64 `json:"alpha_vs_hodl"`
	MaxDrawdownPct *float64 `json:"max_drawdown_pct"`
	TotalTrades    int      `json:"total_trades"`
	WinRatePct     *float64 `json:"win_rate"`
	RuntimeHours   *float64 `json:"runtime_hours"`
}

// Compute derives the summary from the sorted timeline and the reconciled
// round-trips.
func Compute(points []portfolio.Point, rounds []trades.Completed) Summary {
	s := Summary{TotalTrades: len(rounds)}

	equities := make([]float64, 0, len(points))
	for _, p := range points {
		if v := p.Mark(); v != nil {
			equities = append(equities, *v)
		}
	}

	if len(equities) > 0 {
		s.StartEquity = ptr(equities[0])
		s.EndEquity = ptr(equities[len(equities)-1])
		s.MaxDrawdownPct = ptr(maxDrawdownPct(equities))
	}
	if s.StartEquity != nil && *s.StartEquity != 0 && s.EndEquity != nil {
		s.NetReturnPct = ptr((*s.EndEquity / *s.StartEquity - 1.0) * 100.0)
	}

	for _, p := range points {
		if p.HodlEquity != nil {
			if s.HodlStart == nil {
				s.HodlStart = ptr(*p.HodlEquity)
			}
			s.HodlEnd = ptr(*p.HodlEquity)
		}
	}
	if s.HodlStart != nil && *s.HodlStart != 0 && s.HodlEnd != nil {
		s.HodlReturnPct = ptr((*s.HodlEnd / *s.HodlStart - 1.0) * 100.0)
	}

	if s.NetReturnPct != nil && s.HodlReturnPct != nil {
		s.AlphaVsHodl = ptr(*s.NetReturnPct - *s.HodlReturnPct)
	}

	wins, decided := 0, 0
	for _, r := range rounds {
		if r.PnL == nil {
			continue
		}
		decided++
		if *r.PnL > 0 {
			wins++
		}
	}
	if decided > 0 {
		s.WinRatePct = ptr(float64(wins) / float64(decided) * 100.0)
	}

	if len(points) > 0 {
		hours := points[len(points)-1].Time.Sub(points[0].Time).Hours()
		if hours < 0 {
			hours = 0
		}
		s.RuntimeHours = ptr(hours)
	}

	return s
}

// maxDrawdownPct walks the equity sequence once, tracking the running peak.
// The result is always within [0, 100].
func maxDrawdownPct(equities []float64) float64 {
	peak := equities[0]
	worst := 0.0
	for _, v := range equities {
		if v > peak {
			peak = v
		}
		dd := 0.0
		if peak != 0 {
			dd = (peak - v) / peak
		}
		if dd > worst {
			worst = dd
		}
	}
	return worst * 100.0
}

func ptr(v float64) *float64 { return &v }

// Currency renders a dollar amount, or an em dash placeholder when nil.
func Currency(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("$%.2f", *v)
}

// Percent renders a percentage, signed by default, or a placeholder when nil.
func Percent(v *float64, signed bool) string {
	if v == nil {
		return "—"
	}
	if signed {
		return fmt.Sprintf("%+.2f%%", *v)
	}
	return fmt.Sprintf("%.2f%%", *v)
}

// Runtime renders a session duration in hours, switching to days past 72h.
func Runtime(hours *float64) string {
	if hours == nil {
		return "—"
	}
	if *hours > 72 {
		return fmt.Sprintf("%.1f days", *hours/24)
	}
	return fmt.Sprintf("%.1f hrs", *hours)
}
