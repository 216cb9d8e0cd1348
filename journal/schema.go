// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	raw_symbol TEXT NOT NULL,
	put_call TEXT NOT NULL,
	strike REAL NOT NULL,
	expiry DATETIME,
	quantity REAL NOT NULL,
	price REAL NOT NULL,
	premium REAL NOT NULL,
	commission REAL NOT NULL,
	multiplier REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME,
	action TEXT NOT NULL,
	strategy TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
CREATE INDEX IF NOT EXISTS idx_trades_open_time ON trades(open_time);
`
