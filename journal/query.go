package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const tradeColumns = `trade_id, coin, side, entry_price, exit_price, quantity, pnl,
	duration_seconds, leverage, confidence, entry_time, exit_time,
	entry_reason, exit_reason`

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	row := j.db.QueryRow(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTradesClosedBetween returns trades whose exit_time is within
// [start, end), oldest first. Still-open positions never match.
func (j *SQLite) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE exit_time IS NOT NULL AND exit_time >= ? AND exit_time < ?
		ORDER BY exit_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOpenTrades returns positions that never closed, oldest entry first.
func (j *SQLite) ListOpenTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE exit_time IS NULL
		ORDER BY entry_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSnapshotsBetween returns timeline points within [start, end).
func (j *SQLite) ListSnapshotsBetween(start, end time.Time) ([]Snapshot, error) {
	rows, err := j.db.Query(`
		SELECT time, balance, equity, return_pct, positions, btc_price, hodl_equity
		FROM snapshots
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			s                                                   Snapshot
			balance, equity, returnPct, positions, price, hodl sql.NullFloat64
		)
		if err := rows.Scan(&s.Time, &balance, &equity, &returnPct, &positions, &price, &hodl); err != nil {
			return nil, err
		}
		s.Balance = fromNullFloat(balance)
		s.Equity = fromNullFloat(equity)
		s.ReturnPct = fromNullFloat(returnPct)
		s.Positions = fromNullFloat(positions)
		s.BTCPrice = fromNullFloat(price)
		s.HodlEquity = fromNullFloat(hodl)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (TradeRecord, error) {
	var (
		rec                                       TradeRecord
		entryPrice, exitPrice, quantity, pnl      sql.NullFloat64
		duration, leverage, confidence            sql.NullFloat64
		exitTime                                  sql.NullTime
	)
	err := s.Scan(
		&rec.TradeID,
		&rec.Coin,
		&rec.Side,
		&entryPrice,
		&exitPrice,
		&quantity,
		&pnl,
		&duration,
		&leverage,
		&confidence,
		&rec.EntryTime,
		&exitTime,
		&rec.EntryReason,
		&rec.ExitReason,
	)
	if err != nil {
		return TradeRecord{}, err
	}
	rec.EntryPrice = fromNullFloat(entryPrice)
	rec.ExitPrice = fromNullFloat(exitPrice)
	rec.Quantity = fromNullFloat(quantity)
	rec.PnL = fromNullFloat(pnl)
	rec.DurationSeconds = fromNullFloat(duration)
	rec.Leverage = fromNullFloat(leverage)
	rec.Confidence = fromNullFloat(confidence)
	if exitTime.Valid {
		t := exitTime.Time
		rec.ExitTime = &t
	}
	return rec, nil
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
