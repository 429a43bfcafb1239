package capture_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"flipbook/internal/capture"
	"flipbook/internal/config"
	"flipbook/internal/project"
	"flipbook/internal/services"
	"flipbook/internal/testsupport"
)

type memoryStore struct {
	collection project.Collection
}

func (m *memoryStore) Load(context.Context) (project.Collection, error) {
	return m.collection.Clone(), nil
}

func (m *memoryStore) Save(_ context.Context, c project.Collection) error {
	m.collection = c
	return nil
}

func newPipeline(t *testing.T, mutate func(*config.Config)) (*capture.Pipeline, *project.Registry) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	if mutate != nil {
		mutate(cfg)
	}
	reg := project.NewRegistry(&memoryStore{}, nil, nil)
	ctx := context.Background()
	if err := reg.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := reg.Create(ctx, "Cats"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return capture.NewPipeline(cfg, reg, nil), reg
}

func storedDimensions(t *testing.T, frame project.StoredImage) (int, int) {
	t.Helper()
	cfgImg, format, err := image.DecodeConfig(bytes.NewReader(frame))
	if err != nil {
		t.Fatalf("decode stored frame: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected stored frame to be jpeg, got %s", format)
	}
	return cfgImg.Width, cfgImg.Height
}

func TestCaptureScalesWideImagesDown(t *testing.T) {
	pipeline, reg := newPipeline(t, nil)
	ctx := context.Background()

	src := testsupport.PNGBytes(t, 1440, 900, color.RGBA{R: 200, A: 255})
	count, err := pipeline.Capture(ctx, "Cats", bytes.NewReader(src))
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected frame count 1, got %d", count)
	}

	proj, err := reg.Get(ctx, "Cats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	w, h := storedDimensions(t, proj.Frames[0])
	if w != 720 || h != 450 {
		t.Fatalf("expected 720x450 after scaling, got %dx%d", w, h)
	}
}

func TestCaptureKeepsSmallImagesUnscaled(t *testing.T) {
	pipeline, reg := newPipeline(t, nil)
	ctx := context.Background()

	src := testsupport.JPEGBytes(t, 320, 240, color.RGBA{G: 150, A: 255})
	if _, err := pipeline.Capture(ctx, "Cats", bytes.NewReader(src)); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	proj, err := reg.Get(ctx, "Cats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	w, h := storedDimensions(t, proj.Frames[0])
	if w != 320 || h != 240 {
		t.Fatalf("expected 320x240 unchanged, got %dx%d", w, h)
	}
}

func TestCaptureRoundsScaledHeight(t *testing.T) {
	pipeline, reg := newPipeline(t, nil)
	ctx := context.Background()

	// 1000x333 scales to 720x239.76, which must round to 720x240.
	src := testsupport.PNGBytes(t, 1000, 333, color.RGBA{B: 120, A: 255})
	if _, err := pipeline.Capture(ctx, "Cats", bytes.NewReader(src)); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	proj, err := reg.Get(ctx, "Cats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	w, h := storedDimensions(t, proj.Frames[0])
	if w != 720 || h != 240 {
		t.Fatalf("expected 720x240, got %dx%d", w, h)
	}
}

func TestCaptureRejectsUnreadableData(t *testing.T) {
	pipeline, reg := newPipeline(t, nil)
	ctx := context.Background()

	_, err := pipeline.Capture(ctx, "Cats", strings.NewReader("not an image"))
	if !errors.Is(err, services.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}

	proj, err := reg.Get(ctx, "Cats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(proj.Frames) != 0 {
		t.Fatalf("failed capture must not mutate the project, got %d frames", len(proj.Frames))
	}
}

func TestCaptureUnknownProject(t *testing.T) {
	pipeline, _ := newPipeline(t, nil)

	src := testsupport.PNGBytes(t, 100, 100, color.RGBA{A: 255})
	_, err := pipeline.Capture(context.Background(), "Nope", bytes.NewReader(src))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCaptureHonorsConfiguredMaxWidth(t *testing.T) {
	pipeline, reg := newPipeline(t, func(c *config.Config) {
		c.Capture.MaxWidth = 100
	})
	ctx := context.Background()

	src := testsupport.PNGBytes(t, 400, 200, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if _, err := pipeline.Capture(ctx, "Cats", bytes.NewReader(src)); err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	proj, err := reg.Get(ctx, "Cats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	w, h := storedDimensions(t, proj.Frames[0])
	if w != 100 || h != 50 {
		t.Fatalf("expected 100x50, got %dx%d", w, h)
	}
}
