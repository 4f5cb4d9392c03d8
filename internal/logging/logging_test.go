package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "iq360.log")

	logger, err := New("debug", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hello")
	logger.Debug("detail")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"msg":"detail"`) {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iq360.log")

	logger, err := New("warn", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("quiet")
	logger.Warn("loud")
	_ = logger.Sync()

	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "quiet") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(string(b), "loud") {
		t.Error("warn message missing")
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New("chatty", filepath.Join(t.TempDir(), "x.log")); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != filepath.Join(dir, "iq360", "iq360.log") {
		t.Errorf("path = %q", got)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected a logger")
	}
}
