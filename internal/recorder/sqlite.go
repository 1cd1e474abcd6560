package recorder

import (
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"MarketLens/internal/logger"
	"MarketLens/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// WAL lets dashboards read while the watcher writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	logger.Info("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			as_of          INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			current_price  REAL,
			rsi            REAL,
			rsi_signal     TEXT,
			macd           REAL,
			macd_signal    REAL,
			macd_histogram REAL,
			macd_trend     TEXT,
			bb_upper       REAL,
			bb_middle      REAL,
			bb_lower       REAL,
			bb_position    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_symbol_ts ON analysis_runs(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS bars (
			source   TEXT NOT NULL,
			symbol   TEXT NOT NULL,
			interval TEXT NOT NULL,
			ts       INTEGER NOT NULL,
			open     REAL,
			high     REAL,
			low      REAL,
			close    REAL,
			volume   REAL,
			PRIMARY KEY (source, symbol, interval, ts)
		)`,

		`CREATE TABLE IF NOT EXISTS logs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			created_utc INTEGER NOT NULL,
			level       TEXT NOT NULL,
			message     TEXT NOT NULL,
			source      TEXT,
			json_data   TEXT,
			request_id  TEXT,
			error_code  INTEGER,
			client_ip   TEXT,
			tags        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_created ON logs(created_utc)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return errors.Wrapf(err, "exec %q", s[:40])
		}
	}
	return nil
}

// RecordAnalysis stores the report's indicator snapshot. Absent or undefined
// indicators are stored as NULL.
func (r *SQLiteRecorder) RecordAnalysis(report *model.AnalysisReport) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		rsi, macd, macdSig, hist, upper, middle, lower model.Value
		rsiSignal, trend, position                     interface{}
	)
	ind := report.Indicators
	if ind.RSI != nil {
		rsi = ind.RSI.Current
		rsiSignal = optString(ind.RSI.Signal)
	}
	if ind.MACD != nil {
		macd, macdSig, hist = ind.MACD.MACD, ind.MACD.Signal, ind.MACD.Histogram
		trend = optString(ind.MACD.Trend)
	}
	if ind.BollingerBands != nil {
		bb := ind.BollingerBands
		upper, middle, lower = bb.Upper, bb.Middle, bb.Lower
		position = optString(bb.Position)
	}

	id := uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(id, timestamp, as_of, symbol, current_price,
		 rsi, rsi_signal, macd, macd_signal, macd_histogram, macd_trend,
		 bb_upper, bb_middle, bb_lower, bb_position)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, time.Now().Unix(), report.AsOf.Unix(), report.Symbol, report.CurrentPrice,
		rsi, rsiSignal, macd, macdSig, hist, trend,
		upper, middle, lower, position,
	)
	if err != nil {
		return "", errors.Wrap(err, "insert analysis run")
	}
	return id, nil
}

// RecordBars upserts bars in a single transaction.
func (r *SQLiteRecorder) RecordBars(source, symbol, interval string, bars []model.OHLCV) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	stmt, err := tx.Prepare(`INSERT INTO bars
		(source, symbol, interval, ts, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(source, symbol, interval, ts) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume`)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "prepare bar upsert")
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(source, symbol, interval, b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "upsert bar %s", b.Time.Format(time.RFC3339))
		}
	}
	return errors.Wrap(tx.Commit(), "commit bars")
}

func (r *SQLiteRecorder) Close() error {
	logger.Info("closing sqlite recorder")
	return r.db.Close()
}

func optString[T ~string](p *T) interface{} {
	if p == nil {
		return nil
	}
	return string(*p)
}
