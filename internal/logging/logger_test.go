package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flipbook/internal/logging"
	"flipbook/internal/services"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesConsoleOutput(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "flipbook.log")

	logger, err := logging.New(logging.Options{
		Level:            "info",
		Format:           "console",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	component := logging.NewComponentLogger(logger, "registry")
	component.Info("collection saved", logging.Int("projects", 3))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "registry: collection saved") {
		t.Fatalf("expected component-prefixed message, got %q", line)
	}
	if !strings.Contains(line, "projects=3") {
		t.Fatalf("expected attribute in output, got %q", line)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "ctx.log")

	logger, err := logging.New(logging.Options{
		Format:           "console",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := services.WithProject(context.Background(), "Cats")
	ctx = services.WithOperation(ctx, "export")
	ctx = services.WithRequestID(ctx, "req-42")

	logging.WithContext(ctx, logger).Info("export finished")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	for _, fragment := range []string{"project=Cats", "operation=export", "correlation_id=req-42"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in output, got %q", fragment, line)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should not panic", logging.Error(nil))
}
