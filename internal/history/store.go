// Package history persists each day's per-currency gross volume to a local
// SQLite database so past days can be reviewed after the top bar moves on.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/coinbar/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// dayFormat is the key under which a day's totals are stored.
const dayFormat = "2006-01-02"

// DayTotals is one recorded day.
type DayTotals struct {
	Day    time.Time
	Totals model.Totals
}

// Store implements the history ledger on SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (or creates) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_totals (
			day TEXT NOT NULL,
			currency TEXT NOT NULL,
			amount INTEGER NOT NULL,
			recorded_at DATETIME NOT NULL,
			PRIMARY KEY (day, currency)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordDay upserts the given day's per-currency totals. Re-recording the
// same day replaces that day's rows, so repeated runs within a day converge
// on the latest snapshot.
func (s *Store) RecordDay(ctx context.Context, day time.Time, totals model.Totals) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	dayKey := day.Format(dayFormat)

	// Drop currencies that vanished from the snapshot, then upsert the rest.
	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_totals WHERE day = ?`, dayKey); err != nil {
		return fmt.Errorf("failed to clear day: %w", err)
	}

	for _, currency := range totals.Currencies() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO daily_totals (day, currency, amount, recorded_at)
			VALUES (?, ?, ?, ?)`,
			dayKey, currency, totals[currency], time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to insert total for %s: %w", currency, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// RecentDays returns up to n recorded days, newest first.
func (s *Store) RecentDays(ctx context.Context, n int) ([]DayTotals, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, currency, amount
		FROM daily_totals
		WHERE day IN (SELECT DISTINCT day FROM daily_totals ORDER BY day DESC LIMIT ?)
		ORDER BY day DESC, currency ASC`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var result []DayTotals
	var current *DayTotals

	for rows.Next() {
		var dayKey, currency string
		var amount int64
		if err := rows.Scan(&dayKey, &currency, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		day, err := time.ParseInLocation(dayFormat, dayKey, time.Local)
		if err != nil {
			return nil, fmt.Errorf("failed to parse day %q: %w", dayKey, err)
		}

		if current == nil || !current.Day.Equal(day) {
			result = append(result, DayTotals{Day: day, Totals: make(model.Totals)})
			current = &result[len(result)-1]
		}
		current.Totals[currency] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return result, nil
}
