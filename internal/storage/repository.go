package storage

import (
	"database/sql"
	"time"

	"github.com/bradchang-ux/stock-backtest/internal/domain/models"
	pq "github.com/lib/pq"
)

// BarsRepository is the Postgres-backed cache of raw daily bars. Only
// fetched provider data is cached; computed metrics are always derived
// fresh per request.
type BarsRepository interface {
	GetBars(symbol string, start, end time.Time) ([]models.DailyBar, error)
	ReplaceBarsBatch(symbol string, start, end time.Time, bars []models.DailyBar) error
	HasFetchForRange(symbol string, start, end time.Time) (bool, error)
	UpsertFetchLog(symbol string, start, end time.Time, rowCount int) error
}

type barsRepository struct {
	db *sql.DB
}

func NewBarsRepository(db *sql.DB) BarsRepository {
	return &barsRepository{db: db}
}

// GetBars returns cached bars for the symbol within [start, end],
// ascending by date.
func (r *barsRepository) GetBars(symbol string, start, end time.Time) ([]models.DailyBar, error) {
	rows, err := r.db.Query(`
		SELECT symbol, bar_date, open, high, low, close, volume
		FROM daily_bars
		WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3
		ORDER BY bar_date ASC
	`, symbol, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bars []models.DailyBar
	for rows.Next() {
		var b models.DailyBar
		if err := rows.Scan(&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, err
		}
		b.Date = b.Date.UTC()
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}

// ReplaceBarsBatch swaps the cached bars for a symbol/range in a single
// transaction: delete the range, then bulk-load the fresh bars via COPY.
func (r *barsRepository) ReplaceBarsBatch(symbol string, start, end time.Time, bars []models.DailyBar) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		`DELETE FROM daily_bars WHERE symbol = $1 AND bar_date >= $2 AND bar_date <= $3`,
		symbol, start, end,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"daily_bars",
		"symbol",
		"bar_date",
		"open",
		"high",
		"low",
		"close",
		"volume",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasFetchForRange reports whether a single previous fetch contained
// the whole requested range for this symbol, so the cache can be served
// without hitting the provider again. Coverage stitched together from
// several fetches does not count: bars between two disjoint fetches
// were never downloaded, and serving across that gap would produce a
// silently incomplete series.
func (r *barsRepository) HasFetchForRange(symbol string, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM fetch_log
			WHERE symbol = $1 AND range_start <= $2 AND range_end >= $3
		)
	`, symbol, start, end).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertFetchLog records one row per fetched range. Ranges are kept
// separate on purpose: merging disjoint fetches into one hull would
// make HasFetchForRange claim coverage for the gap between them.
// Refetching the exact same range only refreshes its metadata.
func (r *barsRepository) UpsertFetchLog(symbol string, start, end time.Time, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO fetch_log (symbol, range_start, range_end, row_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (symbol, range_start, range_end)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  fetched_at = NOW()
	`, symbol, start, end, rowCount)
	return err
}
