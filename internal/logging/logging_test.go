package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-dashboard/internal/config/configs"
)

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, configs.Logger{Level: "warn", Format: "json"})

	logger := slog.New(h)
	logger.Info("dropped")
	logger.Warn("kept", "ad_set_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.EqualValues(t, 7, rec["ad_set_id"])
}

func TestNewHandlerFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, configs.Logger{Level: "nope", Format: "xml"}))
	logger.Debug("dropped")
	logger.Info("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	logger, closer := New(configs.Logger{Level: "info", Format: "json", File: path, MaxSizeMB: 1}, "test")
	logger.Info("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
	assert.Contains(t, string(data), `"env":"test"`)
}
