package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "test", LevelWarn)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("careful", "page", 3)
	l.Error("broken", "page", 4, "dangling")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below the minimum level were written: %q", out)
	}
	if !strings.Contains(out, "[test] ") {
		t.Errorf("missing prefix in %q", out)
	}
	if !strings.Contains(out, "[WARN] careful page=3") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] broken page=4 dangling=?") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	l.Error("nothing happens")
	if l.With("x") != nil {
		t.Error("With on nil logger should return nil")
	}
}

func TestWithKeepsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "root", LevelError).With("child")
	l.Warn("dropped")
	l.Error("kept")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("child logger should inherit the minimum level")
	}
	if !strings.Contains(buf.String(), "[child] ") {
		t.Errorf("child prefix missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
