// Package trades normalizes logged trade actions into typed, sorted events
// and reconciles asymmetric entry/exit legs into completed round-trips.
package trades

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/tradereplay/portfolio"
	"github.com/rustyeddy/tradereplay/records"
)

// Recognized actions. Anything else passes through uppercased so new
// vocabulary in the logs doesn't break older builds.
const (
	ActionEntry = "ENTRY"
	ActionClose = "CLOSE"
)

// Event is one logged trade action, either an open or a close.
type Event struct {
	Time         time.Time `json:"timestamp"`
	Action       string    `json:"action"`
	Side         string    `json:"side"`
	Coin         string    `json:"coin"`
	Price        *float64  `json:"price"`
	Quantity     *float64  `json:"quantity"`
	PnL          *float64  `json:"pnl"`
	BalanceAfter *float64  `json:"balance_after"`
	ProfitTarget *float64  `json:"profit_target"`
	StopLoss     *float64  `json:"stop_loss"`
	Leverage     *float64  `json:"leverage"`
	Confidence   *float64  `json:"confidence"`
	Reason       string    `json:"reason"`

	// PlotValue anchors the event vertically on the equity chart. It is the
	// row's own post-trade balance when logged, otherwise the equity of the
	// latest snapshot at or before the event.
	PlotValue *float64 `json:"plot_value"`
}

// BuildEvents converts raw trade rows into a timestamp-sorted event sequence,
// back-filling each event's plot value from the already-built timeline.
// Timestamp handling follows the same rules as portfolio.BuildPoints.
func BuildEvents(rows []records.Row, points []portfolio.Point) ([]Event, error) {
	marks := newMarkIndex(points)

	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		raw := row.String("timestamp")
		if raw == "" {
			continue
		}
		t, err := records.ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("trades: %w", err)
		}

		balanceAfter := row.Float("balance_after")
		plot := balanceAfter
		if plot == nil {
			plot = marks.at(t)
		}

		events = append(events, Event{
			Time:         t,
			Action:       strings.ToUpper(row.String("action")),
			Side:         strings.ToUpper(row.String("side")),
			Coin:         row.String("coin"),
			Price:        row.Float("price"),
			Quantity:     row.Float("quantity"),
			PnL:          row.Float("pnl"),
			BalanceAfter: balanceAfter,
			ProfitTarget: row.Float("profit_target"),
			StopLoss:     row.Float("stop_loss"),
			Leverage:     row.Float("leverage"),
			Confidence:   row.Float("confidence"),
			Reason:       row.String("reason"),
			PlotValue:    plot,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	if len(events) == 0 {
		return nil, fmt.Errorf("trades: no usable trade rows")
	}
	return events, nil
}

// markIndex answers "last known equity as of time T" queries against the
// sorted timeline.
type markIndex struct {
	times  []time.Time
	values []*float64
}

func newMarkIndex(points []portfolio.Point) markIndex {
	idx := markIndex{
		times:  make([]time.Time, len(points)),
		values: make([]*float64, len(points)),
	}
	for i, p := range points {
		idx.times[i] = p.Time
		idx.values[i] = p.Mark()
	}
	return idx
}

// at returns the mark of the rightmost snapshot with timestamp <= t, or nil
// when t precedes the first snapshot or that snapshot has no usable value.
func (m markIndex) at(t time.Time) *float64 {
	i := sort.Search(len(m.times), func(i int) bool {
		return m.times[i].After(t)
	}) - 1
	if i < 0 {
		return nil
	}
	return m.values[i]
}
