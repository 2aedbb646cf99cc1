package mylogger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("line is not JSON: %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLoggerRenamesKeys(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelInfo, &buf)

	log.Action("mount").With("module", "companies").Info("loaded")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if line["message"] != "loaded" {
		t.Errorf("message = %v", line["message"])
	}
	if _, ok := line["timestamp"]; !ok {
		t.Error("timestamp key missing")
	}
	if _, ok := line["msg"]; ok {
		t.Error("msg key should be renamed")
	}
	if line["action"] != "mount" || line["module"] != "companies" {
		t.Errorf("unexpected attrs: %v", line)
	}
	if line["instance_id"] == "" {
		t.Error("instance_id missing")
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelWarn, &buf)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "shown" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestLoggerErrorCarriesStack(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(LevelDebug, &buf)

	log.Error("request failed", errors.New("boom"), "path", "/companies")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	group, ok := lines[0]["error"].(map[string]any)
	if !ok {
		t.Fatalf("error group missing: %v", lines[0])
	}
	stack, ok := group["stack"].([]any)
	if !ok || len(stack) == 0 {
		t.Fatalf("stack missing: %v", group)
	}
	if lines[0]["path"] != "/companies" {
		t.Errorf("path attr = %v", lines[0]["path"])
	}
}
