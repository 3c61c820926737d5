package trades

import (
	"sort"
	"time"
)

// OpenPositionReason is the exit reason synthesized for entries that never
// saw a matching close.
const OpenPositionReason = "Open position"

// Completed is one reconciled round-trip, or a still-open position when the
// exit fields are nil.
type Completed struct {
	EntryTime   time.Time  `json:"entry_timestamp"`
	ExitTime    *time.Time `json:"exit_timestamp"`
	Coin        string     `json:"coin"`
	Side        string     `json:"side"`
	EntryPrice  *float64   `json:"entry_price"`
	ExitPrice   *float64   `json:"exit_price"`
	Quantity    *float64   `json:"quantity"`
	PnL         *float64   `json:"pnl"`
	Duration    *float64   `json:"duration_seconds"`
	Leverage    *float64   `json:"leverage"`
	Confidence  *float64   `json:"confidence"`
	EntryReason string     `json:"entry_reason"`
	ExitReason  string     `json:"exit_reason"`
}

type positionKey struct {
	coin string
	side string
}

// Pair matches ENTRY and CLOSE events sharing a (coin, side) key into
// completed trades. Matching is FIFO per key: the oldest open entry closes
// first, which is how overlapping positions behave in the source logs.
//
// A CLOSE with no open entry is kept rather than dropped: its own price,
// quantity and risk fields stand in for the missing entry leg and its own
// timestamp becomes the entry timestamp. Entries still open at end of
// stream are emitted with exit fields nil. Every input event therefore maps
// into exactly one output record or is merged into one.
func Pair(events []Event) []Completed {
	open := make(map[positionKey][]Event)
	var keyOrder []positionKey

	completed := make([]Completed, 0, len(events))

	for _, ev := range events {
		key := positionKey{coin: ev.Coin, side: ev.Side}
		switch ev.Action {
		case ActionEntry:
			if _, ok := open[key]; !ok {
				keyOrder = append(keyOrder, key)
			}
			open[key] = append(open[key], ev)

		case ActionClose:
			var entry *Event
			if queue := open[key]; len(queue) > 0 {
				e := queue[0]
				open[key] = queue[1:]
				entry = &e
			}
			completed = append(completed, closeTrade(entry, ev))
		}
	}

	// Drain never-closed entries in first-seen key order so output is
	// deterministic for identical input.
	for _, key := range keyOrder {
		for _, entry := range open[key] {
			completed = append(completed, Completed{
				EntryTime:   entry.Time,
				Coin:        entry.Coin,
				Side:        entry.Side,
				EntryPrice:  entry.Price,
				Quantity:    entry.Quantity,
				Leverage:    entry.Leverage,
				Confidence:  entry.Confidence,
				EntryReason: entry.Reason,
				ExitReason:  OpenPositionReason,
			})
		}
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return marker(completed[i]).Before(marker(completed[j]))
	})
	return completed
}

func closeTrade(entry *Event, exit Event) Completed {
	c := Completed{
		ExitTime:   &exit.Time,
		Coin:       exit.Coin,
		Side:       exit.Side,
		ExitPrice:  exit.Price,
		PnL:        exit.PnL,
		ExitReason: exit.Reason,
	}
	if entry != nil {
		c.EntryTime = entry.Time
		c.EntryPrice = entry.Price
		c.Quantity = entry.Quantity
		c.Leverage = entry.Leverage
		c.Confidence = entry.Confidence
		c.EntryReason = entry.Reason
		d := exit.Time.Sub(entry.Time).Seconds()
		c.Duration = &d
		return c
	}

	// Orphan close: borrow the close's own fields for the missing entry leg.
	c.EntryTime = exit.Time
	c.EntryPrice = exit.Price
	c.Quantity = exit.Quantity
	c.Leverage = exit.Leverage
	c.Confidence = exit.Confidence
	return c
}

// marker is the instant a trade shows up in the replay log: its exit time,
// or its entry time while still open.
func marker(c Completed) time.Time {
	if c.ExitTime != nil {
		return *c.ExitTime
	}
	return c.EntryTime
}
