// Package history records successful evaluations for the history panel.
package history

import (
	"sync"
	"time"
)

// Entry is one past successful evaluation.
type Entry struct {
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	At         time.Time `json:"at"`
}

// String renders the entry the way the history panel shows it.
func (e Entry) String() string {
	return e.Expression + " = " + e.Result
}

// Log is an append-only, ordered record of evaluations.
// List returns entries in recorded order, most recent last.
type Log interface {
	Record(expression, result string) error
	List() ([]Entry, error)
	Clear() error
	Len() int
}

// Memory is a session-scoped Log with no capacity limit.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory log.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// Record appends an entry.
func (m *Memory) Record(expression, result string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{
		Expression: expression,
		Result:     result,
		At:         m.now(),
	})
	return nil
}

// List returns a copy of all entries, oldest first.
func (m *Memory) List() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result, nil
}

// Clear removes all entries.
func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// Len returns the number of entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Strings renders entries for display.
func Strings(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}
