package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecordsInOrder(t *testing.T) {
	m := NewMemory()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Record(fmt.Sprintf("%d+%d", i, i), fmt.Sprint(2*i)))
	}

	entries, err := m.List()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, 5, m.Len())
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("%d+%d", i, i), e.Expression)
		assert.Equal(t, fmt.Sprint(2*i), e.Result)
		assert.False(t, e.At.IsZero())
	}
}

func TestMemoryNoDedup(t *testing.T) {
	m := NewMemory()
	m.Record("1+1", "2")
	m.Record("1+1", "2")
	assert.Equal(t, 2, m.Len())
}

func TestMemoryListIsCopy(t *testing.T) {
	m := NewMemory()
	m.Record("2*3", "6")

	entries, _ := m.List()
	entries[0].Result = "7"

	again, _ := m.List()
	assert.Equal(t, "6", again[0].Result)
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	m.Record("1", "1")
	m.Record("2", "2")
	require.NoError(t, m.Clear())

	entries, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, m.Len())

	m.Record("3", "3")
	assert.Equal(t, 1, m.Len())
}

func TestEntryString(t *testing.T) {
	e := Entry{Expression: "2+3*4", Result: "14"}
	assert.Equal(t, "2+3*4 = 14", e.String())
	assert.Equal(t, []string{"2+3*4 = 14"}, Strings([]Entry{e}))
}
