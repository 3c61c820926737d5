package trades

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradereplay/portfolio"
	"github.com/rustyeddy/tradereplay/records"
)

func ptr(v float64) *float64 { return &v }

func timelinePoints(t *testing.T) []portfolio.Point {
	t.Helper()
	return []portfolio.Point{
		{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Equity: ptr(1000)},
		{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Balance: ptr(1080)},
		{Time: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Equity: ptr(1150)},
	}
}

func TestBuildEventsSortsAndNormalizes(t *testing.T) {
	t.Parallel()

	rows := []records.Row{
		{"timestamp": "2024-01-02T12:00:00Z", "action": "close", "side": "long", "coin": "BTC", "price": "31000", "pnl": "1000"},
		{"timestamp": "2024-01-01T12:00:00Z", "action": "Entry", "side": "Long", "coin": "BTC", "price": "30000", "quantity": "1"},
	}

	events, err := BuildEvents(rows, timelinePoints(t))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.True(t, sort.SliceIsSorted(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	}))
	assert.Equal(t, ActionEntry, events[0].Action)
	assert.Equal(t, "LONG", events[0].Side)
	assert.Equal(t, ActionClose, events[1].Action)
}

func TestBuildEventsUnrecognizedActionPassesThrough(t *testing.T) {
	t.Parallel()

	rows := []records.Row{
		{"timestamp": "2024-01-01T12:00:00Z", "action": "liquidation", "side": "short", "coin": "ETH"},
	}

	events, err := BuildEvents(rows, timelinePoints(t))
	require.NoError(t, err)
	assert.Equal(t, "LIQUIDATION", events[0].Action)
	assert.Equal(t, "SHORT", events[0].Side)
}

func TestBuildEventsPlotValueFromBalanceAfter(t *testing.T) {
	t.Parallel()

	rows := []records.Row{
		{"timestamp": "2024-01-01T12:00:00Z", "action": "ENTRY", "coin": "BTC", "balance_after": "995"},
	}

	events, err := BuildEvents(rows, timelinePoints(t))
	require.NoError(t, err)
	require.NotNil(t, events[0].PlotValue)
	assert.Equal(t, 995.0, *events[0].PlotValue)
}

func TestBuildEventsPlotValueFromTimeline(t *testing.T) {
	t.Parallel()

	rows := []records.Row{
		// between snapshot 1 and 2: latest at-or-before is 2024-01-01 equity 1000
		{"timestamp": "2024-01-01T12:00:00Z", "action": "ENTRY", "coin": "BTC"},
		// exactly on snapshot 2, which has no equity: balance stands in
		{"timestamp": "2024-01-02T00:00:00Z", "action": "CLOSE", "coin": "BTC"},
	}

	events, err := BuildEvents(rows, timelinePoints(t))
	require.NoError(t, err)

	require.NotNil(t, events[0].PlotValue)
	assert.Equal(t, 1000.0, *events[0].PlotValue)
	require.NotNil(t, events[1].PlotValue)
	assert.Equal(t, 1080.0, *events[1].PlotValue)
}

func TestBuildEventsPlotValueBeforeFirstSnapshot(t *testing.T) {
	t.Parallel()

	rows := []records.Row{
		{"timestamp": "2023-12-31T00:00:00Z", "action": "ENTRY", "coin": "BTC"},
	}

	events, err := BuildEvents(rows, timelinePoints(t))
	require.NoError(t, err)
	assert.Nil(t, events[0].PlotValue)
}

func TestBuildEventsSkipAndFatalRules(t *testing.T) {
	t.Parallel()

	events, err := BuildEvents([]records.Row{
		{"action": "ENTRY", "coin": "BTC"},
		{"timestamp": "2024-01-01T00:00:00Z", "action": "ENTRY", "coin": "BTC"},
	}, timelinePoints(t))
	require.NoError(t, err)
	assert.Len(t, events, 1)

	_, err = BuildEvents([]records.Row{
		{"timestamp": "garbage", "action": "ENTRY", "coin": "BTC"},
	}, timelinePoints(t))
	assert.ErrorContains(t, err, "bad timestamp")

	_, err = BuildEvents(nil, timelinePoints(t))
	assert.ErrorContains(t, err, "no usable trade rows")
}

func TestBuildEventsRiskFields(t *testing.T) {
	t.Parallel()

	rows := []records.Row{
		{
			"timestamp":     "2024-01-01T12:00:00Z",
			"action":        "ENTRY",
			"side":          "LONG",
			"coin":          "BTC",
			"price":         "30000",
			"quantity":      "0.5",
			"profit_target": "33000",
			"stop_loss":     "28500",
			"leverage":      "3",
			"confidence":    "0.8",
			"reason":        "breakout over resistance",
		},
	}

	events, err := BuildEvents(rows, timelinePoints(t))
	require.NoError(t, err)

	ev := events[0]
	assert.Equal(t, 33000.0, *ev.ProfitTarget)
	assert.Equal(t, 28500.0, *ev.StopLoss)
	assert.Equal(t, 3.0, *ev.Leverage)
	assert.Equal(t, 0.8, *ev.Confidence)
	assert.Equal(t, "breakout over resistance", ev.Reason)
}
