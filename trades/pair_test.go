package trades

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func entry(ts time.Time, coin, side string, price float64) Event {
	return Event{
		Time:   ts,
		Action: ActionEntry,
		Side:   side,
		Coin:   coin,
		Price:  ptr(price),
	}
}

func closeEv(ts time.Time, coin, side string, price, pnl float64) Event {
	return Event{
		Time:   ts,
		Action: ActionClose,
		Side:   side,
		Coin:   coin,
		Price:  ptr(price),
		PnL:    ptr(pnl),
	}
}

func TestPairRoundTrip(t *testing.T) {
	t.Parallel()

	e := entry(at(1, 0), "BTC", "LONG", 30000)
	e.Quantity = ptr(1)
	e.Leverage = ptr(2)
	e.Reason = "momentum entry"
	c := closeEv(at(1, 6), "BTC", "LONG", 31000, 1000)
	c.Reason = "take profit"

	rounds := Pair([]Event{e, c})
	require.Len(t, rounds, 1)

	r := rounds[0]
	assert.Equal(t, "BTC", r.Coin)
	assert.Equal(t, "LONG", r.Side)
	assert.Equal(t, 30000.0, *r.EntryPrice)
	assert.Equal(t, 31000.0, *r.ExitPrice)
	assert.Equal(t, 1.0, *r.Quantity)
	assert.Equal(t, 1000.0, *r.PnL)
	assert.Equal(t, 2.0, *r.Leverage)
	assert.Equal(t, "momentum entry", r.EntryReason)
	assert.Equal(t, "take profit", r.ExitReason)
	require.NotNil(t, r.Duration)
	assert.Equal(t, 6*3600.0, *r.Duration)
	require.NotNil(t, r.ExitTime)
	assert.True(t, r.ExitTime.Equal(at(1, 6)))
}

func TestPairFIFO(t *testing.T) {
	t.Parallel()

	events := []Event{
		entry(at(1, 0), "BTC", "LONG", 30000),
		entry(at(2, 0), "BTC", "LONG", 32000),
		closeEv(at(3, 0), "BTC", "LONG", 33000, 3000),
	}

	rounds := Pair(events)
	require.Len(t, rounds, 2)

	// The close pairs with the oldest entry.
	closed := rounds[0]
	if closed.ExitTime == nil {
		closed = rounds[1]
	}
	assert.Equal(t, 30000.0, *closed.EntryPrice)
	assert.True(t, closed.EntryTime.Equal(at(1, 0)))
}

func TestPairKeysAreIndependent(t *testing.T) {
	t.Parallel()

	events := []Event{
		entry(at(1, 0), "BTC", "LONG", 30000),
		entry(at(1, 1), "BTC", "SHORT", 30100),
		entry(at(1, 2), "ETH", "LONG", 2000),
		closeEv(at(2, 0), "BTC", "SHORT", 29000, 1100),
	}

	rounds := Pair(events)
	require.Len(t, rounds, 4)

	var closed, open int
	for _, r := range rounds {
		if r.ExitTime != nil {
			closed++
			assert.Equal(t, "BTC", r.Coin)
			assert.Equal(t, "SHORT", r.Side)
		} else {
			open++
			assert.Equal(t, OpenPositionReason, r.ExitReason)
		}
	}
	assert.Equal(t, 1, closed)
	assert.Equal(t, 3, open)
}

func TestPairOpenPosition(t *testing.T) {
	t.Parallel()

	e := entry(at(1, 0), "ETH", "SHORT", 2000)
	e.Reason = "funding skew"

	rounds := Pair([]Event{e})
	require.Len(t, rounds, 1)

	r := rounds[0]
	assert.Nil(t, r.ExitTime)
	assert.Nil(t, r.ExitPrice)
	assert.Nil(t, r.PnL)
	assert.Nil(t, r.Duration)
	assert.Equal(t, 2000.0, *r.EntryPrice)
	assert.Equal(t, "funding skew", r.EntryReason)
	assert.Equal(t, OpenPositionReason, r.ExitReason)
}

func TestPairOrphanClose(t *testing.T) {
	t.Parallel()

	c := closeEv(at(1, 0), "SOL", "LONG", 100, -50)
	c.Quantity = ptr(3)
	c.Leverage = ptr(5)

	rounds := Pair([]Event{c})
	require.Len(t, rounds, 1)

	r := rounds[0]
	// Entry leg borrowed from the close itself.
	assert.True(t, r.EntryTime.Equal(at(1, 0)))
	assert.Equal(t, 100.0, *r.EntryPrice)
	assert.Equal(t, 100.0, *r.ExitPrice)
	assert.Equal(t, 3.0, *r.Quantity)
	assert.Equal(t, 5.0, *r.Leverage)
	assert.Equal(t, -50.0, *r.PnL)
	assert.Nil(t, r.Duration)
	assert.Equal(t, "", r.EntryReason)
}

func TestPairConservation(t *testing.T) {
	t.Parallel()

	events := []Event{
		entry(at(1, 0), "BTC", "LONG", 1),
		entry(at(1, 1), "BTC", "LONG", 2),
		entry(at(1, 2), "ETH", "LONG", 3),
		closeEv(at(1, 3), "BTC", "LONG", 4, 0),
		closeEv(at(1, 4), "DOGE", "SHORT", 5, 0), // orphan
		{Time: at(1, 5), Action: "FUNDING", Coin: "BTC", Side: "LONG"},
	}

	rounds := Pair(events)

	// 2 closes + 2 entries left unmatched; the unrecognized action yields nothing.
	assert.Len(t, rounds, 4)
}

func TestPairOrderedByExitThenEntry(t *testing.T) {
	t.Parallel()

	events := []Event{
		entry(at(1, 0), "BTC", "LONG", 1),
		entry(at(2, 0), "ETH", "LONG", 2), // stays open
		closeEv(at(5, 0), "BTC", "LONG", 3, 10),
		entry(at(3, 0), "SOL", "LONG", 4),
		closeEv(at(4, 0), "SOL", "LONG", 5, -2),
	}

	rounds := Pair(events)
	require.Len(t, rounds, 3)

	markers := make([]time.Time, len(rounds))
	for i, r := range rounds {
		if r.ExitTime != nil {
			markers[i] = *r.ExitTime
		} else {
			markers[i] = r.EntryTime
		}
	}
	assert.True(t, sort.SliceIsSorted(markers, func(i, j int) bool {
		return markers[i].Before(markers[j])
	}))

	// The open ETH entry (day 2) sorts before both closes.
	assert.Equal(t, "ETH", rounds[0].Coin)
	assert.Equal(t, "SOL", rounds[1].Coin)
	assert.Equal(t, "BTC", rounds[2].Coin)
}

func TestPairDeterministic(t *testing.T) {
	t.Parallel()

	events := []Event{
		entry(at(1, 0), "BTC", "LONG", 1),
		entry(at(1, 0), "ETH", "LONG", 2),
		entry(at(1, 0), "SOL", "SHORT", 3),
		entry(at(1, 0), "DOGE", "SHORT", 4),
	}

	first := Pair(events)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Pair(events))
	}
}
