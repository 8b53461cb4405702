package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/config"
	"fintrack/internal/services"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json"}, &buf)

	logger.Info("dropped")
	logger.Warn("kept", "record_id", "rent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "rent", entry["record_id"])
	assert.Equal(t, "app", entry["component"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&config.Config{LogLevel: "debug", LogFormat: "text"}, &buf).Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestUrgencyPolicy(t *testing.T) {
	p := UrgencyPolicy(&config.Config{UrgencySoonDays: 4, UrgencyWeekDays: 10})
	assert.Equal(t, services.UrgencyPolicy{SoonDays: 4, WeekDays: 10}, p)
	assert.NoError(t, p.Validate())
}
