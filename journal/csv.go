package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes trades and snapshots to two flat files. Optional values
// are left as empty cells.
type CSVJournal struct {
	trades    *csv.Writer
	snapshots *csv.Writer
	tf, sf    *os.File
}

func NewCSV(tradesPath, snapshotsPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(snapshotsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{
		"trade_id", "coin", "side", "entry_price", "exit_price", "quantity",
		"pnl", "duration_seconds", "leverage", "confidence",
		"entry_time", "exit_time", "entry_reason", "exit_reason",
	}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{
		"time", "balance", "equity", "return_pct", "positions",
		"btc_price", "hodl_equity",
	}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{trades: tw, snapshots: sw, tf: tf, sf: sf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.Coin,
		t.Side,
		f(t.EntryPrice),
		f(t.ExitPrice),
		f(t.Quantity),
		f(t.PnL),
		f(t.DurationSeconds),
		f(t.Leverage),
		f(t.Confidence),
		t.EntryTime.Format(time.RFC3339),
		ft(t.ExitTime),
		t.EntryReason,
		t.ExitReason,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordSnapshot(s Snapshot) error {
	err := j.snapshots.Write([]string{
		s.Time.Format(time.RFC3339),
		f(s.Balance),
		f(s.Equity),
		f(s.ReturnPct),
		f(s.Positions),
		f(s.BTCPrice),
		f(s.HodlEquity),
	})
	if err != nil {
		return err
	}
	j.snapshots.Flush()
	return j.snapshots.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.snapshots.Flush()
	if err := j.snapshots.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x *float64) string {
	if x == nil {
		return ""
	}
	return strconv.FormatFloat(*x, 'f', 6, 64)
}

func ft(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
