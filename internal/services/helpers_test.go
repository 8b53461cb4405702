package services

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func d(s string) core.Date { return core.MustParseDate(s) }

func strPtr(s string) *string { return &s }

func expense(id string, cents int64, date, category string) core.Record {
	r := core.Record{ID: id, UserID: "u1", Kind: core.Expense, Amount: core.Cents(cents), Date: d(date), Frequency: core.None}
	if category != "" {
		r.CategoryID = strPtr(category)
	}
	return r
}

func income(id string, cents int64, date string) core.Record {
	return core.Record{ID: id, UserID: "u1", Kind: core.Income, Amount: core.Cents(cents), Date: d(date), Frequency: core.None}
}

func recurring(r core.Record, f core.Frequency) core.Record {
	r.IsRecurring = true
	r.Frequency = f
	return r
}

func withStatus(r core.Record, s core.StoredStatus) core.Record {
	r.Status = s
	return r
}

// jsonLogger returns a debug-level JSON logger for component and a function
// decoding every line written to it so far.
func jsonLogger(t *testing.T, component string) (*log.Logger, func() []map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	l := log.New(log.Config{Level: slog.LevelDebug, Format: "json", Component: component, Output: &buf})
	return l, func() []map[string]any {
		var lines []map[string]any
		for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			if raw == "" {
				continue
			}
			var line map[string]any
			if err := json.Unmarshal([]byte(raw), &line); err != nil {
				t.Fatalf("decode log line %q: %v", raw, err)
			}
			lines = append(lines, line)
		}
		return lines
	}
}

func linesWithMsg(lines []map[string]any, msg string) []map[string]any {
	var out []map[string]any
	for _, l := range lines {
		if l["msg"] == msg {
			out = append(out, l)
		}
	}
	return out
}
