package store

import (
	"errors"
	"testing"
	"time"

	"github.com/aezell/sprite-differ/pkg/differ/manifest"
)

func testManifest(id string, createdAt time.Time) *manifest.Manifest {
	m := manifest.New(id, "web-1", "/var/sprites/web-1", []manifest.Entry{
		{Path: "app.js", Type: manifest.TypeFile, Size: 100, SHA256: "aaaa"},
		{Path: "assets", Type: manifest.TypeDirectory},
	})
	m.CreatedAt = createdAt
	return m
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreOpenClose(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t)

	m := testManifest("ckpt-001", time.Now())
	if err := s.Put(m); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get("ckpt-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.CheckpointID != "ckpt-001" {
		t.Errorf("CheckpointID: got %q", got.CheckpointID)
	}
	if got.Sprite != "web-1" {
		t.Errorf("Sprite: got %q", got.Sprite)
	}
	if got.TotalFiles != 1 || got.TotalDirs != 1 {
		t.Errorf("totals: got %d files, %d dirs", got.TotalFiles, got.TotalDirs)
	}
	if len(got.Files) != 2 {
		t.Fatalf("Files: got %d entries", len(got.Files))
	}
	if got.Files[0].SHA256 != "aaaa" {
		t.Errorf("entry hash: got %q", got.Files[0].SHA256)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStorePutOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(testManifest("ckpt-001", time.Now())); err != nil {
		t.Fatal(err)
	}

	updated := manifest.New("ckpt-001", "web-1", "/var/sprites/web-1", []manifest.Entry{
		{Path: "app.js", Type: manifest.TypeFile, Size: 200, SHA256: "bbbb"},
	})
	if err := s.Put(updated); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("ckpt-001")
	if err != nil {
		t.Fatal(err)
	}
	if got.Files[0].SHA256 != "bbbb" {
		t.Errorf("expected overwritten entry, got hash %q", got.Files[0].SHA256)
	}
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(testManifest("ckpt-001", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("ckpt-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := s.Get("ckpt-001"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	s := openTestStore(t)

	now := time.Now()
	for i, id := range []string{"old", "mid", "new"} {
		m := testManifest(id, now.Add(time.Duration(i)*time.Hour))
		if err := s.Put(m); err != nil {
			t.Fatal(err)
		}
	}

	infos, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("List: got %d entries", len(infos))
	}

	// Newest first.
	if infos[0].CheckpointID != "new" || infos[2].CheckpointID != "old" {
		t.Errorf("unexpected order: %q, %q, %q",
			infos[0].CheckpointID, infos[1].CheckpointID, infos[2].CheckpointID)
	}

	limited, err := s.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limited List: got %d entries", len(limited))
	}
	if limited[0].CheckpointID != "new" {
		t.Errorf("limited List should keep newest, got %q", limited[0].CheckpointID)
	}
}

func TestStoreListEmpty(t *testing.T) {
	s := openTestStore(t)

	infos, err := s.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if infos == nil {
		t.Error("List should return an empty slice, not nil")
	}
	if len(infos) != 0 {
		t.Errorf("List: got %d entries", len(infos))
	}
}

func TestStoreCleanup(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put(testManifest("stale", time.Now().AddDate(0, 0, -60))); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(testManifest("fresh", time.Now())); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Cleanup(30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Cleanup removed %d, want 1", removed)
	}

	if _, err := s.Get("stale"); !errors.Is(err, ErrNotFound) {
		t.Error("stale checkpoint should be removed")
	}
	if _, err := s.Get("fresh"); err != nil {
		t.Errorf("fresh checkpoint should survive: %v", err)
	}
}
