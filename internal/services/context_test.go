package services_test

import (
	"context"
	"testing"

	"flipbook/internal/services"
)

func TestContextCarriers(t *testing.T) {
	ctx := context.Background()

	if _, ok := services.ProjectFromContext(ctx); ok {
		t.Fatal("expected no project on empty context")
	}

	ctx = services.WithProject(ctx, "Cats")
	ctx = services.WithOperation(ctx, "capture_frame")
	ctx = services.WithRequestID(ctx, "req-1")

	if name, ok := services.ProjectFromContext(ctx); !ok || name != "Cats" {
		t.Fatalf("unexpected project: %q ok=%v", name, ok)
	}
	if op, ok := services.OperationFromContext(ctx); !ok || op != "capture_frame" {
		t.Fatalf("unexpected operation: %q ok=%v", op, ok)
	}
	if id, ok := services.RequestIDFromContext(ctx); !ok || id != "req-1" {
		t.Fatalf("unexpected request id: %q ok=%v", id, ok)
	}
}

func TestEmptyValuesAreNotStored(t *testing.T) {
	ctx := services.WithProject(context.Background(), "")
	if _, ok := services.ProjectFromContext(ctx); ok {
		t.Fatal("expected empty project name to be ignored")
	}
}
