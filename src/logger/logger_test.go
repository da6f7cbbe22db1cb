package logger

import (
	"bytes"
	"strings"
	"testing"

	"market-climber/src/models"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&models.MConfig{LogLevel: "warning"}, "Test").WithOutput(&buf)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	l.Warning("warn %d", 3)
	l.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below WARNING should be dropped, got %q", out)
	}
	if !strings.Contains(out, "[Test] WARNING: warn 3") {
		t.Errorf("expected warning line, got %q", out)
	}
	if !strings.Contains(out, "[Test] ERROR: error 4") {
		t.Errorf("expected error line, got %q", out)
	}
}

func TestNilConfigDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(nil, "Default").WithOutput(&buf)

	l.Debug("hidden")
	l.Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug should be hidden at INFO level")
	}
	if !strings.Contains(buf.String(), "[Default] INFO: shown") {
		t.Errorf("expected info line, got %q", buf.String())
	}
}

func TestNamedSharesOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&models.MConfig{LogLevel: "ERROR"}, "Parent").WithOutput(&buf)
	child := parent.Named("Child")

	child.Warning("dropped")
	child.Error("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("child should inherit ERROR level")
	}
	if !strings.Contains(buf.String(), "[Child] ERROR: kept") {
		t.Errorf("expected child line, got %q", buf.String())
	}
}

func TestCriticalExits(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(nil, "Fatal").WithOutput(&buf)
	code := -1
	l.exit = func(c int) { code = c }

	l.Critical("boom")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "CRITICAL: boom") {
		t.Errorf("expected critical line, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]int{
		"DEBUG":    LevelDebug,
		"info":     LevelInfo,
		"Warn":     LevelWarning,
		"error":    LevelError,
		"CRITICAL": LevelCritical,
		"":         LevelInfo,
		"verbose":  LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
