package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.Log{Format: "JSON", Level: slog.LevelInfo}))

	logger.Debug("hidden")
	logger.Info("order created", slog.String("order_id", "abc"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "order created", record["msg"])
	assert.Equal(t, "abc", record["order_id"])
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.Log{Format: "text", Level: slog.LevelWarn}))

	logger.Info("skipped")
	assert.Empty(t, buf.String())

	logger.Warn("stock low")
	assert.Contains(t, buf.String(), "stock low")
}
