// Package portfolio normalizes raw portfolio snapshot rows into a sorted
// timeline and derives the buy-and-hold benchmark series against it.
package portfolio

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/tradereplay/records"
)

// Point is one balance/equity snapshot on the timeline. Optional fields are
// nil when the source row did not carry a usable value.
type Point struct {
	Time       time.Time `json:"timestamp"`
	Balance    *float64  `json:"balance"`
	Equity     *float64  `json:"equity"`
	ReturnPct  *float64  `json:"return_pct"`
	Positions  *float64  `json:"positions"`
	BTCPrice   *float64  `json:"btc_price"`
	HodlEquity *float64  `json:"hodl_equity"`
}

// Mark returns the point's equity, falling back to balance, or nil when the
// snapshot carries neither.
func (p Point) Mark() *float64 {
	if p.Equity != nil {
		return p.Equity
	}
	return p.Balance
}

// BuildPoints converts raw snapshot rows into a timestamp-sorted timeline.
//
// Rows without a timestamp are dropped (partial logging is normal); a row
// whose timestamp is present but unparsable aborts the build, since every
// downstream ordering guarantee hangs off these instants. The benchmark
// series is filled in a single pass once the points are sorted.
func BuildPoints(rows []records.Row) ([]Point, error) {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		raw := row.String("timestamp")
		if raw == "" {
			continue
		}
		t, err := records.ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("portfolio: %w", err)
		}
		points = append(points, Point{
			Time:      t,
			Balance:   row.Float("total_balance"),
			Equity:    row.Float("total_equity"),
			ReturnPct: row.Float("total_return_pct"),
			Positions: row.Float("num_positions"),
			BTCPrice:  row.Float("btc_price"),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
	if len(points) == 0 {
		return nil, fmt.Errorf("portfolio: no usable snapshot rows")
	}

	fillBenchmark(points)
	return points, nil
}

// fillBenchmark computes the "hold BTC from the same starting equity" curve.
// The implied unit holding is fixed the first time equity and a non-zero BTC
// price line up, and frozen from then on. Points without a price get no
// benchmark value.
func fillBenchmark(points []Point) {
	var units *float64
	for i := range points {
		p := &points[i]
		hasPrice := p.BTCPrice != nil && *p.BTCPrice != 0
		if units == nil && p.Equity != nil && hasPrice {
			u := *p.Equity / *p.BTCPrice
			units = &u
		}
		if units != nil && hasPrice {
			h := *units * *p.BTCPrice
			p.HodlEquity = &h
		} else {
			p.HodlEquity = nil
		}
	}
}
