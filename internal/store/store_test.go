package store_test

import (
	"context"
	"testing"

	"flipbook/internal/project"
	"flipbook/internal/store"
	"flipbook/internal/testsupport"
)

func TestFirstRunLoadsEmptyCollection(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	collection, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(collection.Projects) != 0 {
		t.Fatalf("expected empty collection on first run, got %d projects", len(collection.Projects))
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	saved := project.Collection{Projects: []project.Project{
		{Name: "Cats", Frames: []project.StoredImage{[]byte{0xff, 0xd8, 0x01}, []byte{0xff, 0xd8, 0x02}}},
		{Name: "Dogs"},
	}}
	if err := s.Save(ctx, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Overwrite to confirm the collection is rewritten as a unit.
	saved.Projects[1].Frames = append(saved.Projects[1].Frames, project.StoredImage([]byte{0xff, 0xd8, 0x03}))
	if err := s.Save(ctx, saved); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(loaded.Projects))
	}
	if loaded.Projects[0].Name != "Cats" || len(loaded.Projects[0].Frames) != 2 {
		t.Fatalf("unexpected first project: %+v", loaded.Projects[0])
	}
	if string(loaded.Projects[0].Frames[1]) != string([]byte{0xff, 0xd8, 0x02}) {
		t.Fatal("frame bytes did not survive the round trip")
	}
	if len(loaded.Projects[1].Frames) != 1 {
		t.Fatalf("expected overwrite to persist, got %d frames", len(loaded.Projects[1].Frames))
	}
}

func TestSecondOpenOnSameDirectoryFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := store.Open(cfg); err == nil {
		t.Fatal("expected second open on a locked data directory to fail")
	}
}

func TestCheckHealth(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if err := s.CheckHealth(context.Background()); err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
}
