package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, coin, side, entry_price, exit_price, quantity, pnl,
		 duration_seconds, leverage, confidence, entry_time, exit_time,
		 entry_reason, exit_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Coin, t.Side,
		nullFloat(t.EntryPrice), nullFloat(t.ExitPrice), nullFloat(t.Quantity),
		nullFloat(t.PnL), nullFloat(t.DurationSeconds),
		nullFloat(t.Leverage), nullFloat(t.Confidence),
		t.EntryTime, nullTime(t.ExitTime),
		t.EntryReason, t.ExitReason,
	)
	return err
}

func (j *SQLite) RecordSnapshot(s Snapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots
		(time, balance, equity, return_pct, positions, btc_price, hodl_equity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Time,
		nullFloat(s.Balance), nullFloat(s.Equity), nullFloat(s.ReturnPct),
		nullFloat(s.Positions), nullFloat(s.BTCPrice), nullFloat(s.HodlEquity),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}
