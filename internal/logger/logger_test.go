package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitCreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{LogDir: dir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Warn("disk almost full", "free", "1%")

	data, err := os.ReadFile(filepath.Join(dir, "lifetracker.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "disk almost full") {
		t.Errorf("log file = %q, want it to contain the warning", string(data))
	}
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want log.Level
	}{
		{"file only", Config{}, log.WarnLevel},
		{"stderr", Config{Stderr: true}, log.InfoLevel},
		{"debug", Config{Debug: true}, log.DebugLevel},
		{"debug wins over stderr", Config{Debug: true, Stderr: true}, log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.LogDir = t.TempDir()
			if err := Init(tt.cfg); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			t.Cleanup(func() { Logger = nil })

			if got := Logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHelpersWithoutLogger(t *testing.T) {
	Logger = nil
	// Must not panic when the logger has not been initialized.
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}

func TestNewWritesPrefix(t *testing.T) {
	var buf bytes.Buffer
	Logger = New(&buf, log.InfoLevel, false)
	t.Cleanup(func() { Logger = nil })

	Info("request", "status", 200)
	Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "lifetracker") {
		t.Errorf("output %q missing prefix", out)
	}
	if !strings.Contains(out, "status=200") {
		t.Errorf("output %q missing keyvals", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
}
