package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustRead(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(content)
}

func TestNewLogger(t *testing.T) {
	t.Run("Writes To Provided Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello", "key", "value")

		out := buf.String()
		if !strings.Contains(out, "hello") || !strings.Contains(out, "key") {
			t.Errorf("unexpected log output %q", out)
		}
	})

	t.Run("Nil Writer Defaults", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Fatal("expected a logger")
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flick.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	logger.Info("file entry")

	content := mustRead(t, path)
	if !strings.Contains(content, "file entry") {
		t.Errorf("log entry missing from file: %q", content)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "component", "catalog")

	logger.Info("scoped")

	if out := buf.String(); !strings.Contains(out, "component") {
		t.Errorf("expected scoped key in %q", out)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Error("expected distinct ids")
	}
	if len(a) != 36 {
		t.Errorf("expected canonical UUID length, got %d", len(a))
	}
}
