package logger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/steeze-dispatch/pkg/config"
	"github.com/joeydtaylor/steeze-dispatch/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLog_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().Log
	cfg.Dir = dir
	cfg.File = "test.log"
	cfg.Console = false
	cfg.Level = "warn"

	l := logger.NewLog(cfg)
	l.Info("dropped")
	l.Warn("kept", zap.String("key", "add"))
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry), "exactly one JSON line expected: %s", b)
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "add", entry["key"])
	assert.Equal(t, "warn", entry["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zap.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zap.InfoLevel, logger.ParseLevel("bogus"))
}
