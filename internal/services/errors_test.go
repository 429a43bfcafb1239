package services_test

import (
	"errors"
	"strings"
	"testing"

	"flipbook/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := errors.New("boom")
	err := services.Wrap(services.ErrDecode, "capture", "decode image", "unreadable input", underlying)
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected wrapped error to match ErrDecode: %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected wrapped error to preserve the cause: %v", err)
	}
	for _, fragment := range []string{"capture", "decode image", "unreadable input"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in error message %q", fragment, err.Error())
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "session", "go back", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected nil marker to default to ErrValidation: %v", err)
	}
}

func TestIsWarning(t *testing.T) {
	warn := services.Wrap(services.ErrPersistence, "registry", "save collection", "disk full", nil)
	if !services.IsWarning(warn) {
		t.Fatal("expected persistence error to be warning-grade")
	}
	if services.IsWarning(services.ErrNotFound) {
		t.Fatal("expected not-found error to be fatal-grade")
	}
}
