package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	coin TEXT NOT NULL,
	side TEXT NOT NULL,
	entry_price REAL,
	exit_price REAL,
	quantity REAL,
	pnl REAL,
	duration_seconds REAL,
	leverage REAL,
	confidence REAL,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME,
	entry_reason TEXT NOT NULL,
	exit_reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	time DATETIME NOT NULL,
	balance REAL,
	equity REAL,
	return_pct REAL,
	positions REAL,
	btc_price REAL,
	hodl_equity REAL
);

CREATE INDEX IF NOT EXISTS idx_trades_exit_time ON trades(exit_time);
CREATE INDEX IF NOT EXISTS idx_snapshots_time ON snapshots(time);
`
