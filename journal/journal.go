// Package journal persists the reconstructed output of a replay run: the
// reconciled round-trips and the portfolio timeline. The pipeline itself
// never reads the journal back; it is a sink for later querying and export.
package journal

import (
	"time"

	"github.com/rustyeddy/tradereplay/pkg/id"
	"github.com/rustyeddy/tradereplay/portfolio"
	"github.com/rustyeddy/tradereplay/trades"
)

// TradeRecord is one reconciled round-trip as stored. Nil fields mean the
// position was still open, or the leg was synthesized from an orphan close.
type TradeRecord struct {
	TradeID         string
	Coin            string
	Side            string
	EntryPrice      *float64
	ExitPrice       *float64
	Quantity        *float64
	PnL             *float64
	DurationSeconds *float64
	Leverage        *float64
	Confidence      *float64
	EntryTime       time.Time
	ExitTime        *time.Time
	EntryReason     string
	ExitReason      string
}

// Snapshot is one stored portfolio timeline point, benchmark included.
type Snapshot struct {
	Time       time.Time
	Balance    *float64
	Equity     *float64
	ReturnPct  *float64
	Positions  *float64
	BTCPrice   *float64
	HodlEquity *float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSnapshot(Snapshot) error
	Close() error
}

// FromCompleted converts a reconciled trade into a storable record,
// assigning it a fresh time-sortable ID.
func FromCompleted(c trades.Completed) TradeRecord {
	return TradeRecord{
		TradeID:         id.New(),
		Coin:            c.Coin,
		Side:            c.Side,
		EntryPrice:      c.EntryPrice,
		ExitPrice:       c.ExitPrice,
		Quantity:        c.Quantity,
		PnL:             c.PnL,
		DurationSeconds: c.Duration,
		Leverage:        c.Leverage,
		Confidence:      c.Confidence,
		EntryTime:       c.EntryTime,
		ExitTime:        c.ExitTime,
		EntryReason:     c.EntryReason,
		ExitReason:      c.ExitReason,
	}
}

// FromPoint converts a timeline point into a storable snapshot.
func FromPoint(p portfolio.Point) Snapshot {
	return Snapshot{
		Time:       p.Time,
		Balance:    p.Balance,
		Equity:     p.Equity,
		ReturnPct:  p.ReturnPct,
		Positions:  p.Positions,
		BTCPrice:   p.BTCPrice,
		HodlEquity: p.HodlEquity,
	}
}

// RecordRun writes a full pipeline result into j, snapshots first.
func RecordRun(j Journal, points []portfolio.Point, rounds []trades.Completed) error {
	for _, p := range points {
		if err := j.RecordSnapshot(FromPoint(p)); err != nil {
			return err
		}
	}
	for _, c := range rounds {
		if err := j.RecordTrade(FromCompleted(c)); err != nil {
			return err
		}
	}
	return nil
}
