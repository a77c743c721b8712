package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf, Component: "test"})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)
	log.Critical("critical message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 log lines, got %d", len(lines))
	}

	want := []string{"DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}
	for i, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i+1, err)
		}
		if e.Level != want[i] {
			t.Errorf("line %d level: got %s, want %s", i+1, e.Level, want[i])
		}
		if e.Component != "test" {
			t.Errorf("line %d component: got %q, want test", i+1, e.Component)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TextFormat, Output: &buf})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Critical("critical message", nil)

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("entries below WARN should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "WARN - warn message") {
		t.Errorf("missing warn entry:\n%s", out)
	}
	if !strings.Contains(out, "CRITICAL - critical message") {
		t.Errorf("missing critical entry:\n%s", out)
	}
}

func TestTextFormat_FieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Output: &buf, Component: "panel"})

	log.Error("decode failed", errors.New("boom"), Fields{"region": "WindDir [°]", "raw": "3x"})

	out := buf.String()
	for _, want := range []string{"ERROR", "[panel]", "decode failed", "raw=3x", "region=WindDir [°]", `error="boom"`, "logger_test.go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: INFO, Format: JSONFormat, Output: &buf})
	run := base.WithFields(Fields{"run": "abc"})

	run.Info("tagged", Fields{"dataset": "wind"})
	base.Info("untagged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var tagged, untagged Entry
	_ = json.Unmarshal([]byte(lines[0]), &tagged)
	_ = json.Unmarshal([]byte(lines[1]), &untagged)

	if tagged.Fields["run"] != "abc" || tagged.Fields["dataset"] != "wind" {
		t.Errorf("tagged fields: got %v", tagged.Fields)
	}
	if len(untagged.Fields) != 0 {
		t.Errorf("parent logger should not inherit child fields, got %v", untagged.Fields)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"warning", WARN, false},
		{"warn", WARN, false},
		{"error", ERROR, false},
		{"critical", CRITICAL, false},
		{"verbose", INFO, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q): got %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != JSONFormat {
		t.Errorf("ParseFormat(json): got %v, %v", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != TextFormat {
		t.Errorf("ParseFormat(text): got %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestOpenFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "capture.log")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	log := New(Config{Level: INFO, Output: f})
	log.Info("hello")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestDiscard(t *testing.T) {
	log := Discard()
	if log.Enabled(CRITICAL) {
		t.Error("Discard logger should not be enabled for any level")
	}
	log.Critical("ignored", nil)
}
