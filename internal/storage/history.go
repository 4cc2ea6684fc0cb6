package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vidyasagar/tcalc/internal/history"
)

// HistoryStore is a history.Log persisted in SQLite.
type HistoryStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ history.Log = (*HistoryStore)(nil)

// NewHistoryStore creates a history store using the given database.
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db.Conn(), now: time.Now}
}

// Record appends an entry.
func (hs *HistoryStore) Record(expression, result string) error {
	_, err := hs.db.Exec(
		`INSERT INTO history (expression, result, evaluated_at) VALUES (?, ?, ?)`,
		expression, result, hs.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// List returns all entries, oldest first.
func (hs *HistoryStore) List() ([]history.Entry, error) {
	rows, err := hs.db.Query(
		`SELECT expression, result, evaluated_at FROM history ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		var at int64
		if err := rows.Scan(&e.Expression, &e.Result, &at); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all history entries.
func (hs *HistoryStore) Clear() error {
	if _, err := hs.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Len returns the number of history entries.
func (hs *HistoryStore) Len() int {
	var count int
	hs.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&count)
	return count
}
