package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_ConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "agoricup.log")
	logger, closer, err := NewLogger(LoggerOptions{Level: "info", Console: &console, File: path})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Debug("hidden detail")
	logger.Warn("Yarn not installed. Installing Yarn...")
	logger.Error("Failed to setup SDK", "err", "boom")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out := console.String()
	if strings.Contains(out, "hidden detail") {
		t.Fatalf("debug line leaked at info level: %s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "Yarn not installed") {
		t.Fatalf("missing warn line: %s", out)
	}
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "err=boom") {
		t.Fatalf("missing error line: %s", out)
	}

	lines, err := Tail(path, 1)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "Failed to setup SDK") {
		t.Fatalf("unexpected tail: %v", lines)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG").String() != "debug" {
		t.Fatalf("debug not parsed")
	}
	if ParseLevel("bogus").String() != "info" {
		t.Fatalf("unknown level should fall back to info")
	}
}

func TestTail_MissingFile(t *testing.T) {
	lines, err := Tail(filepath.Join(t.TempDir(), "none.log"), 10)
	if err != nil || len(lines) != 0 {
		t.Fatalf("expected empty tail, got %v %v", lines, err)
	}
}
