package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { Logger = nil }()

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", Logger.GetLevel())
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitLevelOverride(t *testing.T) {
	defer func() { Logger = nil }()

	if err := Init(Config{ConfigDir: t.TempDir(), Level: "info"}); err != nil {
		t.Fatal(err)
	}
	if Logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info", Logger.GetLevel())
	}

	if err := Init(Config{ConfigDir: t.TempDir(), Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestHelpersBeforeInit(t *testing.T) {
	Logger = nil
	// must not panic
	Debug("noop")
	Warn("noop", "key", "value")
	if With("component", "test") != nil {
		t.Error("With() should be nil before Init")
	}
}

func TestWithCarriesKeyvals(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewWithWriter(&buf, log.DebugLevel, false)
	defer func() { Logger = nil }()

	With("component", "reminders").Info("scheduled")
	if !strings.Contains(buf.String(), "component=reminders") {
		t.Errorf("output missing keyvals: %q", buf.String())
	}
}
