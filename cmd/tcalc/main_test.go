package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tcalc/internal/history"
	"github.com/vidyasagar/tcalc/internal/logger"
	"github.com/vidyasagar/tcalc/internal/storage"
)

func TestEvalOnce(t *testing.T) {
	var out, errOut bytes.Buffer
	log := logger.NewConsole(&errOut, "info")

	assert.Equal(t, 0, evalOnce("(2+3)*4", &out, log))
	assert.Equal(t, "20\n", out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	assert.Equal(t, 1, evalOnce("5/0", &out, log))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "division by zero")
}

func TestOpenHistory(t *testing.T) {
	cfg := storage.DefaultConfig()
	log, closeLog := openHistory(&cfg, zerolog.Nop())
	defer closeLog()
	_, ok := log.(*history.Memory)
	assert.True(t, ok)

	cfg.History.Persist = true
	cfg.History.Path = filepath.Join(t.TempDir(), "tcalc.db")
	log, closeStore := openHistory(&cfg, zerolog.Nop())
	defer closeStore()
	_, ok = log.(*storage.HistoryStore)
	require.True(t, ok)
	require.NoError(t, log.Record("1+1", "2"))
	assert.Equal(t, 1, log.Len())
}

func TestLoadConfigFromFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, "light", cfg.Theme)
}
